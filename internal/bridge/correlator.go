package bridge

import (
	"sync"
	"time"

	"github.com/deskbridge/deskbridge/internal/errors"
	"github.com/deskbridge/deskbridge/internal/logging"
	"github.com/deskbridge/deskbridge/internal/signal"
)

// operation describes one correlated host request: what to dispatch into
// the store, which internal signal completes it, and which signal name
// carries the answer back to the host.
type operation struct {
	// name is the host-facing request signal, for logs.
	name string

	// responseSignal is the internal completion signal to wait for.
	responseSignal string

	// responseName is the client→host signal carrying the answer.
	responseName string

	// dispatch starts the operation. It must return immediately; the
	// answer arrives later via responseSignal.
	dispatch func(key int64, requestID string)
}

// pendingKey identifies an outstanding request. The correlation key is
// caller-supplied business data (the site id), not a generated request id,
// so at most one request per (signal, site) is outstanding at a time.
type pendingKey struct {
	responseSignal string
	key            int64
}

type pendingReq struct {
	requestID string
	cancelSub func()
	timer     *time.Timer
	createdAt time.Time
}

// correlator implements the client half of the host-initiated
// request/response exchanges. For each request it registers a one-shot
// listener on the operation's completion signal, matches the observed key
// against the requested one, and forwards the outcome to the host exactly
// once. A mismatched key still forwards the answer, with the error field
// overridden to name both keys: the host must be told something.
type correlator struct {
	local   signal.Subscriber
	emit    *emitter
	timeout time.Duration

	requestIDs bool
	newID      func() string

	log *logging.Logger

	mu      sync.Mutex
	pending map[pendingKey]*pendingReq
}

func newCorrelator(local signal.Subscriber, emit *emitter, cfg *config) *correlator {
	return &correlator{
		local:      local,
		emit:       emit,
		timeout:    cfg.responseTimeout,
		requestIDs: cfg.requestIDs,
		newID:      cfg.newRequestID,
		log:        cfg.logger.WithComponent("correlator"),
		pending:    make(map[pendingKey]*pendingReq),
	}
}

// begin starts a correlated exchange. A second request for the same
// (signal, key) before the first response displaces the outstanding one:
// the displaced request is answered with an error so the host never hangs
// on it.
func (c *correlator) begin(op operation, key int64) {
	pk := pendingKey{responseSignal: op.responseSignal, key: key}

	req := &pendingReq{createdAt: time.Now()}
	if c.requestIDs {
		req.requestID = c.newID()
	}

	c.mu.Lock()
	displaced := c.pending[pk]
	if displaced != nil {
		c.retireLocked(displaced)
		delete(c.pending, pk)
	}
	c.pending[pk] = req
	c.mu.Unlock()

	if displaced != nil {
		c.log.Warn("request displaced by newer request for same key",
			"signal", op.name, "site_id", key)
		c.emit.sendResponse(op.responseName, Response{
			SiteID: key,
			Status: StatusError,
			Error:  errors.NewSupersededError(op.responseSignal, key).Error(),
		})
	}

	handler := func(s signal.Signal) {
		result, ok := parseResult(s.Args)
		if !ok {
			c.log.Warn("malformed completion payload", "signal", op.responseSignal)
			result = OperationResult{SiteID: key, Status: StatusError, Err: "malformed completion payload"}
		}

		if c.requestIDs && result.RequestID != "" && result.RequestID != req.requestID {
			// Not our exchange; leave the listener armed.
			return
		}

		if !c.claim(pk, req) {
			// Already answered (displaced or timed out); late firings are
			// ignored, never misrouted to a stale correlation.
			return
		}
		if req.timer != nil {
			req.timer.Stop()
		}
		if c.requestIDs {
			req.cancelSub()
		}

		errMsg := result.Err
		if result.SiteID != key {
			errMsg = errors.NewCorrelationError(op.responseSignal, key, result.SiteID).Error()
		}

		c.log.Debug("forwarding response", "signal", op.name, "site_id", key, "status", result.Status)
		c.emit.sendResponse(op.responseName, Response{
			SiteID: key,
			Status: result.Status,
			Error:  errMsg,
		})
	}

	if c.requestIDs {
		// With request ids a non-matching completion must leave the
		// listener armed, so retirement is explicit on match.
		req.cancelSub = c.local.Subscribe(op.responseSignal, handler)
	} else {
		req.cancelSub = c.local.SubscribeOnce(op.responseSignal, handler)
	}

	if c.timeout > 0 {
		req.timer = time.AfterFunc(c.timeout, func() {
			if !c.claim(pk, req) {
				return
			}
			req.cancelSub()
			c.log.Warn("request timed out", "signal", op.name, "site_id", key, "timeout", c.timeout)
			c.emit.sendResponse(op.responseName, Response{
				SiteID: key,
				Status: StatusError,
				Error:  errors.NewTimeoutError(op.responseSignal, c.timeout).Error(),
			})
		})
	}

	c.log.Debug("dispatching correlated request", "signal", op.name, "site_id", key, "request_id", req.requestID)
	op.dispatch(key, req.requestID)
}

// claim removes req from the pending table if it is still the outstanding
// request for pk. Exactly one caller wins; everyone else backs off.
func (c *correlator) claim(pk pendingKey, req *pendingReq) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending[pk] != req {
		return false
	}
	delete(c.pending, pk)
	return true
}

// retireLocked cancels a request's listener and timer without answering.
// Callers hold c.mu.
func (c *correlator) retireLocked(req *pendingReq) {
	if req.cancelSub != nil {
		req.cancelSub()
	}
	if req.timer != nil {
		req.timer.Stop()
	}
}

// stop retires every outstanding request without answering. Used on bridge
// shutdown.
func (c *correlator) stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for pk, req := range c.pending {
		c.retireLocked(req)
		delete(c.pending, pk)
	}
}

// outstanding reports the number of unanswered requests.
func (c *correlator) outstanding() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// parseResult coerces a completion-signal payload into an OperationResult.
// Local subsystems send the typed struct; payloads that crossed a JSON
// boundary arrive as maps.
func parseResult(args []any) (OperationResult, bool) {
	if len(args) == 0 {
		return OperationResult{}, false
	}
	switch v := args[0].(type) {
	case OperationResult:
		return v, true
	case *OperationResult:
		return *v, true
	case map[string]any:
		result := OperationResult{}
		siteID, ok := coerceInt64(v["siteId"])
		if !ok {
			return OperationResult{}, false
		}
		result.SiteID = siteID
		result.Status, _ = v["status"].(string)
		result.Err, _ = v["error"].(string)
		result.RequestID, _ = v["requestId"].(string)
		return result, true
	default:
		return OperationResult{}, false
	}
}
