package service

import "errors"

var (
	// ErrEmptyIdea возвращается, когда идея пустая или состоит из пробелов.
	// Генерация при этом не запускается: это защита триггера, а не ошибка AI.
	ErrEmptyIdea = errors.New("story idea is empty")
)
