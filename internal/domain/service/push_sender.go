package service

import "context"

// PushSender delivers a single push notification to a device token.
//
// Delivery is best-effort: one outbound call per recipient, no batching, no
// retry. Any transport failure or non-success response is absorbed into a
// false return, so callers only ever learn an aggregate success count.
type PushSender interface {
	Send(ctx context.Context, token, title, body string) bool
}
