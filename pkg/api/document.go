package api

import "time"

// DocumentResponse - состояние документа пользователя
type DocumentResponse struct {
	UpdatedAt time.Time      `json:"updatedAt"`
	State     map[string]any `json:"state"`
}

// MergeRequest - merge-запись: ключи верхнего уровня state заменяются
// по отдельности, отсутствующие ключи сохраняются
type MergeRequest struct {
	State map[string]any `json:"state"`
}

// DocumentEvent отправляется подписчику сразу после подключения
// и после каждого изменения документа
type DocumentEvent struct {
	UpdatedAt time.Time      `json:"updatedAt"`
	State     map[string]any `json:"state,omitempty"`
	Exists    bool           `json:"exists"`
}
