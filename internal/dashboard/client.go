package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/drios/docscope/internal/document"
)

// AnalysisError is a failure the analysis service declared about the
// document's content, as opposed to a transport fault. Its message is
// shown to the user verbatim.
type AnalysisError struct {
	Message string
}

func (e *AnalysisError) Error() string {
	return e.Message
}

// Collaborator is the full set of operations the dashboard consumes.
type Collaborator interface {
	Submitter
	Fetcher
}

// Submitter submits a document for analysis.
type Submitter interface {
	SubmitDocument(ctx context.Context, filename string, data []byte) (*document.AnalysisOutcome, error)
}

// Fetcher reads and mutates the stored document collection.
type Fetcher interface {
	ListDocuments(ctx context.Context) ([]document.StoredDocument, error)
	Stats(ctx context.Context) (*document.DashboardStats, error)
	DeleteDocument(ctx context.Context, id int64) error
}

// Client talks to the docscope backend over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a Client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			// Analysis is an AI inference call; give it room but never
			// let it hang forever.
			Timeout: 120 * time.Second,
		},
	}
}

type submitResponse struct {
	document.AnalysisOutcome
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// SubmitDocument uploads a file for analysis. A declared failure comes
// back as *AnalysisError even though the transport succeeded; anything
// else non-2xx or unreadable is a transport fault.
func (c *Client) SubmitDocument(ctx context.Context, filename string, data []byte) (*document.AnalysisOutcome, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("building upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("building upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("building upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", &body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling analysis service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analysis service status: %s", resp.Status)
	}

	var result submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding analysis response: %w", err)
	}
	if result.Error != "" {
		return nil, &AnalysisError{Message: result.Error}
	}

	return &result.AnalysisOutcome, nil
}

// ListDocuments fetches the current stored document listing.
func (c *Client) ListDocuments(ctx context.Context) ([]document.StoredDocument, error) {
	var listing struct {
		Documents []document.StoredDocument `json:"documents"`
	}
	if err := c.getJSON(ctx, "/documents", &listing); err != nil {
		return nil, err
	}
	return listing.Documents, nil
}

// Stats fetches the server-computed dashboard aggregate.
func (c *Client) Stats(ctx context.Context) (*document.DashboardStats, error) {
	var stats document.DashboardStats
	if err := c.getJSON(ctx, "/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// DeleteDocument asks the store to remove a document. An id that is
// already gone is treated as success.
func (c *Client) DeleteDocument(ctx context.Context, id int64) error {
	url := fmt.Sprintf("%s/documents/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling document store: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("document store status: %s", resp.Status)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling document store: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("document store status: %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
