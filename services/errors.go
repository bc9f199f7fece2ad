package services

import "errors"

// Типизированные ошибки сервисного слоя. Обработчики сопоставляют их
// с HTTP-статусами через errors.Is; сервисы заворачивают контекст
// через fmt.Errorf("...: %w", err).
var (
	// ErrValidation - некорректный ввод, исправляется на стороне вызывающего
	ErrValidation = errors.New("validation failed")
	// ErrNotFound - сущность по ссылке отсутствует
	ErrNotFound = errors.New("not found")
	// ErrNotAuthorized - у вызывающего нет прав на сущность
	ErrNotAuthorized = errors.New("not authorized")
	// ErrNotOwner - книга не принадлежит вызывающему
	ErrNotOwner = errors.New("book is not owned by caller")
	// ErrSelfTrade - попытка обменяться с самим собой
	ErrSelfTrade = errors.New("cannot trade with yourself")
	// ErrSelfFriend - попытка добавить в друзья самого себя
	ErrSelfFriend = errors.New("cannot add yourself as friend")
	// ErrInvalidState - сущность не в том состоянии для перехода
	ErrInvalidState = errors.New("invalid state for this operation")
	// ErrAlreadyExists - нарушение уникальности
	ErrAlreadyExists = errors.New("already exists")
)
