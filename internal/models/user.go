// internal/models/user.go
package models

// User profile as served by the backend.
type User struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Grade     string `json:"grade,omitempty"`
	Birth     string `json:"birth,omitempty"`
	StuID     string `json:"stuId,omitempty"`
	School    string `json:"school,omitempty"`
	AvatarURI string `json:"avatarUri,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// TomatoFocusData records one completed (or stopped) focus session.
type TomatoFocusData struct {
	UserID            int    `json:"userId"`
	DurationInSeconds int64  `json:"durationInSeconds"`
	Timestamp         string `json:"timestamp"` // UTC ISO-8601
	TaskID            int    `json:"taskId"`
}
