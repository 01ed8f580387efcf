package verify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client drives a running items API through the full CRUD sequence and
// prints each call's outcome. It asserts nothing; it is a manual
// integration check, not a test suite.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Out     io.Writer
}

// NewClient creates a verification client targeting the given base URL
func NewClient(baseURL string, out io.Writer) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		Out:     out,
	}
}

// Run executes the CRUD sequence. Steps after CREATE only run when CREATE
// succeeded and returned an item ID.
func (c *Client) Run() {
	fmt.Fprintln(c.Out, "Starting verification...")

	id, ok := c.createItem()
	if !ok {
		fmt.Fprintln(c.Out, "Failed to create item, skipping other tests.")
		return
	}

	c.readItems()
	c.readItem(id)
	c.updateItem(id)
	c.patchItem(id)
	c.deleteItem(id)
	c.readItems() // deleted item must be gone
}

func (c *Client) createItem() (int64, bool) {
	fmt.Fprintln(c.Out, "Testing CREATE item...")
	status, body := c.request(http.MethodPost, "/items", map[string]interface{}{
		"name":     "Test Item",
		"quantity": 10,
	})
	if status != http.StatusOK {
		return 0, false
	}

	decoded, ok := body.(map[string]interface{})
	if !ok {
		return 0, false
	}
	rawID, ok := decoded["id"].(float64)
	if !ok {
		return 0, false
	}
	return int64(rawID), true
}

func (c *Client) readItems() {
	fmt.Fprintln(c.Out, "\nTesting READ ALL items...")
	c.request(http.MethodGet, "/items", nil)
}

func (c *Client) readItem(id int64) {
	fmt.Fprintf(c.Out, "\nTesting READ ONE item (ID: %d)...\n", id)
	c.request(http.MethodGet, fmt.Sprintf("/items/%d", id), nil)
}

func (c *Client) updateItem(id int64) {
	fmt.Fprintf(c.Out, "\nTesting UPDATE item (ID: %d)...\n", id)
	c.request(http.MethodPut, fmt.Sprintf("/items/%d", id), map[string]interface{}{
		"name":     "Updated Test Item",
		"quantity": 20,
	})
}

func (c *Client) patchItem(id int64) {
	fmt.Fprintf(c.Out, "\nTesting PATCH item (ID: %d)...\n", id)
	// Only quantity changes; the name must survive the patch
	c.request(http.MethodPatch, fmt.Sprintf("/items/%d", id), map[string]interface{}{
		"quantity": 50,
	})
}

func (c *Client) deleteItem(id int64) {
	fmt.Fprintf(c.Out, "\nTesting DELETE item (ID: %d)...\n", id)
	c.request(http.MethodDelete, fmt.Sprintf("/items/%d", id), nil)
}

// request performs one HTTP call and prints its status and body. Transport
// failures print a reason and report status 0.
func (c *Client) request(method, path string, payload interface{}) (int, interface{}) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			fmt.Fprintf(c.Out, "Error: %v\n", err)
			return 0, nil
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reqBody)
	if err != nil {
		fmt.Fprintf(c.Out, "Error: %v\n", err)
		return 0, nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		fmt.Fprintf(c.Out, "Error: %v\n", err)
		return 0, nil
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Fprintf(c.Out, "Error: %v\n", err)
		return 0, nil
	}

	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		decoded = string(raw)
	}

	fmt.Fprintf(c.Out, "Status: %d\n", resp.StatusCode)
	fmt.Fprintf(c.Out, "Response: %v\n", decoded)
	return resp.StatusCode, decoded
}
