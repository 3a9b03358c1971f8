// internal/planner/attachments.go
package planner

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/focusdeck/focusdeck/internal/models"
)

// UploadAttachment uploads a file to a task. A single file may not
// exceed 10 MiB and a task's live attachments may not exceed 100 MiB
// combined; both checks run before any bytes leave the process.
func (c *Controller) UploadAttachment(ctx context.Context, taskID int, fileName string, size int64, file io.Reader) (*models.Attachment, error) {
	if err := c.requireModify(taskID); err != nil {
		return nil, err
	}
	if size > maxAttachmentSize {
		return nil, ErrAttachmentTooBig
	}

	c.mu.Lock()
	task := c.taskByID(taskID)
	if task == nil {
		c.mu.Unlock()
		return nil, ErrTaskNotFound
	}
	total := task.AttachmentsTotalSize()
	c.mu.Unlock()

	if total+size > maxAttachmentTotal {
		return nil, ErrAttachmentQuota
	}

	created, err := c.gw.UploadAttachment(ctx, taskID, fileName, io.LimitReader(file, maxAttachmentSize))
	if err != nil {
		return nil, fmt.Errorf("upload attachment: %w", err)
	}

	c.mu.Lock()
	if task := c.taskByID(taskID); task != nil {
		task.Attachments = append(task.Attachments, *created)
	}
	c.mu.Unlock()
	return created, nil
}

// DownloadAttachment streams an attachment's content. The caller closes
// the reader.
func (c *Controller) DownloadAttachment(ctx context.Context, taskID, attachmentID int) (io.ReadCloser, error) {
	return c.gw.DownloadAttachment(ctx, taskID, attachmentID)
}

// DeleteAttachment soft-deletes an attachment into the task's recycle
// bin.
func (c *Controller) DeleteAttachment(ctx context.Context, taskID, attachmentID int) error {
	if err := c.requireModify(taskID); err != nil {
		return err
	}

	if err := c.gw.DeleteAttachment(ctx, taskID, attachmentID); err != nil {
		return fmt.Errorf("delete attachment: %w", err)
	}

	c.mu.Lock()
	if task := c.taskByID(taskID); task != nil {
		for i := range task.Attachments {
			if task.Attachments[i].ID == attachmentID {
				recycled := task.Attachments[i]
				recycled.IsDeleted = true
				recycled.DeletedAt = c.now().UTC().Format(time.RFC3339)
				task.Attachments = append(task.Attachments[:i], task.Attachments[i+1:]...)
				c.recycledFiles[taskID] = append(c.recycledFiles[taskID], recycled)
				break
			}
		}
	}
	c.mu.Unlock()
	return nil
}

// RestoreAttachment brings an attachment back from the recycle bin,
// re-checking the per-task size quota first.
func (c *Controller) RestoreAttachment(ctx context.Context, taskID, attachmentID int) error {
	if err := c.requireModify(taskID); err != nil {
		return err
	}

	c.mu.Lock()
	task := c.taskByID(taskID)
	if task == nil {
		c.mu.Unlock()
		return ErrTaskNotFound
	}
	idx := -1
	for i := range c.recycledFiles[taskID] {
		if c.recycledFiles[taskID][i].ID == attachmentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return ErrAttachmentNotFound
	}
	restored := c.recycledFiles[taskID][idx]
	total := task.AttachmentsTotalSize()
	c.mu.Unlock()

	if total+restored.SizeInBytes > maxAttachmentTotal {
		return ErrAttachmentQuota
	}

	if err := c.gw.RestoreAttachment(ctx, taskID, attachmentID); err != nil {
		return fmt.Errorf("restore attachment: %w", err)
	}

	restored.IsDeleted = false
	restored.DeletedAt = ""

	c.mu.Lock()
	c.recycledFiles[taskID] = removeAttachment(c.recycledFiles[taskID], attachmentID)
	if task := c.taskByID(taskID); task != nil {
		task.Attachments = append(task.Attachments, restored)
	}
	c.mu.Unlock()
	return nil
}

// UpdateAttachmentPermissions replaces an attachment's member ACL. On a
// team task only admins may manage the ACL.
func (c *Controller) UpdateAttachmentPermissions(ctx context.Context, taskID, attachmentID int, permissions map[int]models.Role) error {
	userID, ok := c.session.UserID()
	if !ok {
		return ErrNoUser
	}

	c.mu.Lock()
	task := c.taskByID(taskID)
	if task == nil {
		c.mu.Unlock()
		return ErrTaskNotFound
	}
	if task.IsTeamTask && task.TeamID != nil {
		team := c.teamOf(task)
		if team == nil {
			c.mu.Unlock()
			return ErrTeamNotFound
		}
		if role, _ := team.RoleOf(userID); role != models.RoleAdmin {
			c.mu.Unlock()
			return ErrAdminRequired
		}
	}
	c.mu.Unlock()

	if err := c.gw.UpdateAttachmentPermissions(ctx, taskID, attachmentID, permissions); err != nil {
		return fmt.Errorf("update attachment permissions: %w", err)
	}

	c.mu.Lock()
	if task := c.taskByID(taskID); task != nil {
		for i := range task.Attachments {
			if task.Attachments[i].ID == attachmentID {
				task.Attachments[i].Permissions = permissions
				break
			}
		}
	}
	c.mu.Unlock()
	return nil
}
