package models

// User carries only the opaque 6-character account ID.
type User struct {
	ID string `json:"id"`
}

type List struct {
	Uuid string `json:"uuid"`
	Name string `json:"name"`
}

type Task struct {
	Uuid     string `json:"uuid"`
	Name     string `json:"name"`
	Complete bool   `json:"complete"`
}

// Request bodies. Field order matters: validation messages are collected
// in declaration order. Complete is a pointer so that an explicit false
// is distinguishable from an absent field.

type CreateListRequest struct {
	Uuid string `json:"uuid" validate:"required"`
	Name string `json:"name" validate:"required"`
}

type UpdateListRequest struct {
	Name string `json:"name" validate:"required"`
}

type CreateTaskRequest struct {
	Uuid     string `json:"uuid" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Complete *bool  `json:"complete" validate:"required"`
}

type UpdateTaskRequest struct {
	Name     string `json:"name" validate:"required"`
	Complete *bool  `json:"complete" validate:"required"`
}

// Result is the outcome of a domain operation. A non-empty Fails slice
// means the request was rejected by validation or ownership checks; Data
// holds the keyed payload for the success envelope and stays nil for
// deletes, which serialize as data:null.
type Result struct {
	Data  map[string]any
	Fails []string
}

func (r Result) Failed() bool {
	return len(r.Fails) > 0
}

func Success(key string, value any) Result {
	return Result{Data: map[string]any{key: value}}
}

func Deleted() Result {
	return Result{}
}

func Fail(messages ...string) Result {
	return Result{Fails: messages}
}
