// Package api is the typed HTTP client for the directory gateway. Every call
// yields either a value or a coded error from pkg/domain-errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"

	"phonebook/internal/contact/models"
	id "phonebook/pkg/domain"
	dErrors "phonebook/pkg/domain-errors"
)

const (
	contactsPath = "/contacts"
	maxErrorBody = 4 << 10
)

// HTTPClient performs HTTP requests. It's implemented by *http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the directory gateway.
type Client struct {
	http     HTTPClient
	endpoint *url.URL
	logger   *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(c HTTPClient) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(cl *Client) {
		if logger != nil {
			cl.logger = logger
		}
	}
}

// New builds a client for the gateway at endpoint, e.g. "http://localhost:3001".
func New(endpoint string, opts ...Option) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("endpoint %q: scheme must be http or https", endpoint)
	}
	if u.Path == "" {
		u.Path = "/"
	}
	c := &Client{http: http.DefaultClient, endpoint: u, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// List fetches the whole collection.
func (c *Client) List(ctx context.Context) ([]models.Contact, error) {
	var contacts []models.Contact
	if err := c.do(ctx, http.MethodGet, contactsPath, nil, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

// Create asks the gateway to add a contact and returns it with its assigned id.
func (c *Client) Create(ctx context.Context, name, number string) (models.Contact, error) {
	var created models.Contact
	body := map[string]string{"name": name, "number": number}
	if err := c.do(ctx, http.MethodPost, contactsPath, body, &created); err != nil {
		return models.Contact{}, err
	}
	return created, nil
}

// Update sends the whole contact; the gateway only applies its number.
func (c *Client) Update(ctx context.Context, contact models.Contact) (models.Contact, error) {
	var updated models.Contact
	if err := c.do(ctx, http.MethodPut, contactPath(contact.ID), contact, &updated); err != nil {
		return models.Contact{}, err
	}
	return updated, nil
}

// Delete removes a contact. A contact that is already gone yields CodeNotFound.
func (c *Client) Delete(ctx context.Context, contactID id.ContactID) error {
	return c.do(ctx, http.MethodDelete, contactPath(contactID), nil, nil)
}

func contactPath(contactID id.ContactID) string {
	return path.Join(contactsPath, contactID.String())
}

func (c *Client) resolve(p string) string {
	u := *c.endpoint
	u.Path = path.Join(c.endpoint.Path, p)
	return u.String()
}

func (c *Client) do(ctx context.Context, method, p string, in, out any) error {
	var body io.Reader
	if in != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(in); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "encode request")
		}
		body = &buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(p), body)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "phonebook server unreachable",
			"method", method,
			"path", p,
			"error", err,
		)
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "phonebook server unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "decode response")
	}
	return nil
}

// decodeError maps a gateway failure onto the client error taxonomy.
func decodeError(resp *http.Response) error {
	var envelope struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	_ = json.Unmarshal(raw, &envelope)

	switch resp.StatusCode {
	case http.StatusBadRequest:
		msg := envelope.Error
		if msg == "" {
			msg = "bad request"
		}
		if strings.HasSuffix(msg, "must be unique") {
			return dErrors.New(dErrors.CodeConflict, msg)
		}
		return dErrors.New(dErrors.CodeValidation, msg)
	case http.StatusNotFound:
		return dErrors.New(dErrors.CodeNotFound, models.MsgContactMissing)
	case http.StatusServiceUnavailable:
		return dErrors.New(dErrors.CodeUnavailable, "phonebook server unavailable")
	default:
		msg := envelope.Error
		if msg == "" {
			msg = fmt.Sprintf("unexpected status %d", resp.StatusCode)
		}
		return dErrors.New(dErrors.CodeInternal, msg)
	}
}
