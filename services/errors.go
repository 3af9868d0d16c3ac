package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// sentinel errors ที่ controller ใช้ map เป็น HTTP status
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

// ValidationError รวม message ราย field
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = msg
	}
}

// Err คืน nil ถ้าไม่มี field ไหนผิด
func (e *ValidationError) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func invalid(field, msg string) error {
	v := &ValidationError{}
	v.Add(field, msg)
	return v
}

// Error error ที่มีข้อความสำหรับ client; Kind เป็นหนึ่งใน sentinel ด้านบน
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

// PublicMessage ข้อความที่ตอบ client ได้
func PublicMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

func notFound(what string) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf("%s not found", what)}
}

func conflict(msg string) error {
	return &Error{Kind: ErrConflict, Message: msg}
}

func unauthenticated(msg string) error {
	return &Error{Kind: ErrUnauthenticated, Message: msg}
}
