// internal/gateway/task_api.go
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/focusdeck/focusdeck/internal/models"
)

type UpdateAttachmentPermissionsRequest struct {
	Permissions map[int]models.Role `json:"permissions"`
}

func (c *Client) CreateTask(ctx context.Context, task models.Task) (*models.Task, error) {
	var out models.Task
	if err := c.doJSON(ctx, http.MethodPost, "/tasks", nil, task, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetTasks(ctx context.Context, userID int) ([]models.Task, error) {
	query := url.Values{"userId": {strconv.Itoa(userID)}}
	var out []models.Task
	if err := c.doJSON(ctx, http.MethodGet, "/tasks", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateTask(ctx context.Context, taskID int, task models.Task) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", taskID), nil, task, nil)
}

func (c *Client) DeleteTask(ctx context.Context, taskID int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", taskID), nil, nil, nil)
}

func (c *Client) CompleteTask(ctx context.Context, taskID int) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d/complete", taskID), nil, nil, nil)
}

func (c *Client) ReorderTasks(ctx context.Context, tasks []models.Task) error {
	return c.doJSON(ctx, http.MethodPut, "/tasks/reorder", nil, tasks, nil)
}

// UploadAttachment streams a file to the backend as multipart form data
// and returns the created attachment record.
func (c *Client) UploadAttachment(ctx context.Context, taskID int, fileName string, file io.Reader) (*models.Attachment, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("copy file data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	path := fmt.Sprintf("/tasks/%d/attachments/upload", taskID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path, nil), &body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload attachment: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var out models.Attachment
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

// DownloadAttachment returns the attachment content stream. The caller
// must close it.
func (c *Client) DownloadAttachment(ctx context.Context, taskID, attachmentID int) (io.ReadCloser, error) {
	path := fmt.Sprintf("/tasks/%d/attachments/%d/download", taskID, attachmentID)
	return c.doRaw(ctx, http.MethodGet, path)
}

func (c *Client) DeleteAttachment(ctx context.Context, taskID, attachmentID int) error {
	path := fmt.Sprintf("/tasks/%d/attachments/%d", taskID, attachmentID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) RestoreAttachment(ctx context.Context, taskID, attachmentID int) error {
	path := fmt.Sprintf("/tasks/%d/attachments/%d/restore", taskID, attachmentID)
	return c.doJSON(ctx, http.MethodPost, path, nil, nil, nil)
}

func (c *Client) UpdateAttachmentPermissions(ctx context.Context, taskID, attachmentID int, permissions map[int]models.Role) error {
	path := fmt.Sprintf("/tasks/%d/attachments/%d/permissions", taskID, attachmentID)
	req := UpdateAttachmentPermissionsRequest{Permissions: permissions}
	return c.doJSON(ctx, http.MethodPut, path, nil, req, nil)
}
