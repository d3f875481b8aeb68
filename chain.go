package restchain

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Node represents one segment of a chained URL. Children are created on
// demand with Child and memoized by name, so repeated access to the same
// segment returns the identical node. The root node owns the Client that
// executes requests; every other node forwards to its parent.
type Node struct {
	mu            sync.Mutex
	segment       string
	parent        *Node
	client        *Client
	headers       map[string]string
	debug         *bool
	cacheLifetime *time.Duration
	children      map[string]*Node
	path          string
	err           error
}

// Wrap starts a chain rooted at segment, normally a base URL like
// "https://api.example.com". A dedicated Client is created for the
// chain; use Client.Wrap to share or customize one.
func Wrap(segment string, options ...ChildOption) *Node {
	n := newNode(segment, nil, nil, options)

	debug := false
	if n.debug != nil {
		debug = *n.debug
	}
	if debug {
		n.client = NewClient(WithDebug())
	} else {
		n.client = NewClient()
	}
	return n
}

// Wrap starts a chain rooted at segment using this client.
func (c *Client) Wrap(segment string, options ...ChildOption) *Node {
	n := newNode(segment, nil, nil, options)
	n.client = c
	return n
}

func newNode(segment string, parent *Node, inheritDebug *bool, options []ChildOption) *Node {
	n := &Node{
		segment:  segment,
		parent:   parent,
		headers:  make(map[string]string),
		children: make(map[string]*Node),
	}
	if inheritDebug != nil {
		debug := *inheritDebug
		n.debug = &debug
	}
	for _, option := range options {
		option(n)
	}
	if segment == "" {
		n.err = &ClientError{
			Type:    ErrorTypeSegment,
			Message: "empty path segment",
		}
	}
	return n
}

// ChildHeaders sets the headers stored on a newly created node. They are
// merged under per-call headers for requests made through the node's
// subtree.
func ChildHeaders(headers map[string]string) ChildOption {
	return func(n *Node) {
		for k, v := range headers {
			n.headers[k] = v
		}
	}
}

// ChildDebug sets the debug flag on a newly created node, overriding the
// value inherited from its parent.
func ChildDebug(enabled bool) ChildOption {
	return func(n *Node) {
		n.debug = &enabled
	}
}

// ChildCacheLifetime sets the default cache lifetime for GET requests
// made through a newly created node.
func ChildCacheLifetime(lifetime time.Duration) ChildOption {
	return func(n *Node) {
		n.cacheLifetime = &lifetime
	}
}

// Child returns the child node for the given segment name, creating and
// memoizing it on first access. The child inherits the debug flag of the
// current node. Options apply only when the child is created; on later
// calls for the same name they are silently ignored and the existing
// node is returned unmodified.
//
// An empty name yields a detached, invalid node whose requests fail with
// ErrInvalidSegment.
func (n *Node) Child(name string, options ...ChildOption) *Node {
	n.mu.Lock()
	defer n.mu.Unlock()

	if child, ok := n.children[name]; ok {
		return child
	}

	child := newNode(name, n, n.debug, options)
	if child.err != nil {
		return child
	}
	n.children[name] = child
	return child
}

// Path returns the forward-slash joined segments from the chain root to
// this node, with no leading or trailing slash. The result is memoized;
// segment and parent never change after construction.
func (n *Node) Path() string {
	n.mu.Lock()
	if n.path != "" {
		path := n.path
		n.mu.Unlock()
		return path
	}
	n.mu.Unlock()

	path := n.segment
	if n.parent != nil {
		path = n.parent.Path() + "/" + n.segment
	}

	n.mu.Lock()
	n.path = path
	n.mu.Unlock()
	return path
}

// Client returns the client executing requests for this chain.
func (n *Node) Client() *Client {
	if n.parent != nil {
		return n.parent.Client()
	}
	return n.client
}

// Err returns the construction error of this node, if any.
func (n *Node) Err() error {
	return n.err
}

// SetHeader stores a header on this node and returns the node for
// chaining. Stored headers apply to every request made through the
// node's subtree.
func (n *Node) SetHeader(key, value string) *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.headers[key] = value
	return n
}

// SetHeaders merges headers into the node's stored headers and returns
// the node for chaining.
func (n *Node) SetHeaders(headers map[string]string) *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	for k, v := range headers {
		n.headers[k] = v
	}
	return n
}

// SetDebug sets this node's debug flag and returns the node for
// chaining. Children created afterwards inherit the new value.
func (n *Node) SetDebug(enabled bool) *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.debug = &enabled
	return n
}

// SetCacheLifetime sets the default cache lifetime for GET requests made
// through this node and returns the node for chaining.
func (n *Node) SetCacheLifetime(lifetime time.Duration) *Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cacheLifetime = &lifetime
	return n
}

// Request resolves the chain URL and options, then executes the HTTP
// call through the chain's Client. The node's own debug flag and cache
// lifetime act as defaults for options not set per call; the node's
// stored headers are copied and merged under per-call headers, so a
// one-off header never sticks to the node. Each ancestor applies its own
// stored options the same way before the root client executes.
func (n *Node) Request(ctx context.Context, method string, options ...CallOption) (Value, error) {
	o := evalCallOptions(options)
	return n.send(ctx, method, &o)
}

func (n *Node) send(ctx context.Context, method string, o *callOptions) (Value, error) {
	if n.err != nil {
		return Value{}, n.err
	}

	if o.url == "" {
		if o.pk != "" {
			o.url = n.Path() + "/" + o.pk
		} else {
			o.url = n.Path()
		}
	}

	n.mu.Lock()
	if o.debug == nil {
		o.debug = n.debug
	}
	if o.cacheFor == nil {
		o.cacheFor = n.cacheLifetime
	}
	merged := make(map[string]string, len(n.headers)+len(o.headers))
	for k, v := range n.headers {
		merged[k] = v
	}
	n.mu.Unlock()
	for k, v := range o.headers {
		merged[k] = v
	}
	o.headers = merged

	if n.parent != nil {
		return n.parent.send(ctx, method, o)
	}
	return n.client.request(ctx, method, o)
}

// Get executes a GET request on the currently formed URL.
func (n *Node) Get(ctx context.Context, options ...CallOption) (Value, error) {
	return n.Request(ctx, "GET", options...)
}

// Post executes a POST request on the currently formed URL.
func (n *Node) Post(ctx context.Context, options ...CallOption) (Value, error) {
	return n.Request(ctx, "POST", options...)
}

// Put executes a PUT request on the currently formed URL.
func (n *Node) Put(ctx context.Context, options ...CallOption) (Value, error) {
	return n.Request(ctx, "PUT", options...)
}

// Patch executes a PATCH request on the currently formed URL.
func (n *Node) Patch(ctx context.Context, options ...CallOption) (Value, error) {
	return n.Request(ctx, "PATCH", options...)
}

// Delete executes a DELETE request on the currently formed URL.
func (n *Node) Delete(ctx context.Context, options ...CallOption) (Value, error) {
	return n.Request(ctx, "DELETE", options...)
}

func (n *Node) String() string {
	return fmt.Sprintf("<Node for %s>", n.Path())
}
