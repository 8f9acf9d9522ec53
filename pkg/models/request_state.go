package models

// Operation names a store action for request state tracking.
type Operation string

const (
	OpLogin            Operation = "login"
	OpFetchUsers       Operation = "fetchUsers"
	OpSearchUsers      Operation = "searchUsers"
	OpFetchUserDetails Operation = "fetchUserDetails"
	OpFetchSuggestions Operation = "fetchSuggestions"
	OpCreateDate       Operation = "createDate"
	OpFetchGenieDates  Operation = "fetchGenieDates"
	OpUpdateDateStatus Operation = "updateDateStatus"
)

type RequestKind string

const (
	RequestIdle    RequestKind = "idle"
	RequestPending RequestKind = "pending"
	RequestError   RequestKind = "error"
)

// RequestState is the status of the latest call of one operation.
type RequestState struct {
	Kind    RequestKind `json:"kind"`
	Op      Operation   `json:"op,omitempty"`
	Message string      `json:"message,omitempty"`
}

func Idle() RequestState {
	return RequestState{Kind: RequestIdle}
}

func Pending(op Operation) RequestState {
	return RequestState{Kind: RequestPending, Op: op}
}

func Failed(op Operation, message string) RequestState {
	return RequestState{Kind: RequestError, Op: op, Message: message}
}

func (s RequestState) IsPending() bool {
	return s.Kind == RequestPending
}

func (s RequestState) IsError() bool {
	return s.Kind == RequestError
}
