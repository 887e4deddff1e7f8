package app

import (
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"slidectl/internal/errs"
)

// fromStatus turns a daemon RPC error back into an error kind. Codes that carry
// no kind are wrapped as plain RPC failures.
func fromStatus(rpc string, err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("daemon %s RPC failed: %w", rpc, err)
	}
	var kind errs.Kind
	switch st.Code() {
	case codes.NotFound:
		kind = errs.KindNotFound
	case codes.InvalidArgument:
		kind = errs.KindFileNotFound
	case codes.FailedPrecondition:
		kind = errs.KindNoTerminal
	case codes.Unavailable:
		kind = errs.KindSpawn
	case codes.Aborted:
		kind = errs.KindTermination
	default:
		return fmt.Errorf("daemon %s RPC failed: %w", rpc, err)
	}
	return &errs.Error{Kind: kind, Msg: st.Message()}
}
