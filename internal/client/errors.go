package client

import "fmt"

// AuthError 凭据被远端明确拒绝（用户可修正，不重试）
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// TransportError 网络或远端故障（用户可重试）
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
