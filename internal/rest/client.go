// ABOUTME: Note gateway for a hosted REST backend.
// ABOUTME: Lists, creates and deletes records under /notes with a bearer token.

package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"resty.dev/v3"

	"github.com/harper/notes/internal/gateway"
	"github.com/harper/notes/internal/models"
)

// Client talks to a backend exposing GET/POST /notes and DELETE /notes/{id}.
type Client struct {
	httpClient *resty.Client
}

func NewClient(baseURL, token string) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Content-Type", "application/json")
	if token != "" {
		client.SetAuthToken(token)
	}
	return &Client{httpClient: client}
}

func (c *Client) Close() error {
	return c.httpClient.Close()
}

type noteRecord struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (r noteRecord) toModel() *models.Note {
	return &models.Note{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Image:       r.Image,
		CreatedAt:   r.CreatedAt,
	}
}

type createRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
}

// listResponse is one page of results. Only the first page is read.
type listResponse struct {
	Items     []noteRecord `json:"items"`
	NextToken string       `json:"nextToken,omitempty"`
}

// List returns the notes in the order the backend sends them.
func (c *Client) List(ctx context.Context) ([]*models.Note, error) {
	response, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&listResponse{}).
		Get("/notes")
	if err != nil {
		return nil, fmt.Errorf("httpClient.Get > %w", err)
	}
	if response.IsError() {
		return nil, statusError(response)
	}

	body, _ := response.Result().(*listResponse)
	notes := []*models.Note{}
	if body == nil {
		return notes, nil
	}
	for _, item := range body.Items {
		notes = append(notes, item.toModel())
	}
	return notes, nil
}

// Create posts a new record and returns it with the backend's ID.
func (c *Client) Create(ctx context.Context, in models.NoteInput) (*models.Note, error) {
	response, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(createRequest{
			Name:        in.Name,
			Description: in.Description,
			Image:       in.Image,
		}).
		SetResult(&noteRecord{}).
		Post("/notes")
	if err != nil {
		return nil, fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return nil, statusError(response)
	}

	record, _ := response.Result().(*noteRecord)
	if record == nil || record.ID == "" {
		return nil, fmt.Errorf("create response missing id: %s", response.String())
	}
	return record.toModel(), nil
}

// Delete removes a record by ID. A 404 maps to gateway.ErrNoteNotFound.
func (c *Client) Delete(ctx context.Context, id string) error {
	response, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParam("id", id).
		Delete("/notes/{id}")
	if err != nil {
		return fmt.Errorf("httpClient.Delete > %w", err)
	}
	if response.StatusCode() == http.StatusNotFound {
		return gateway.ErrNoteNotFound
	}
	if response.IsError() {
		return statusError(response)
	}
	return nil
}

func statusError(response *resty.Response) error {
	return fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
}
