package swrand

import (
	"sync"

	"github.com/arcaneiq/swrand/space"
)

// Node is a vertex of the small-world graph: an object handle, a stable
// internal id equal to the object's position in the original data slice,
// and an ordered adjacency list protected by a per-node mutex.
//
// The lock is held only around appending to or snapshotting friends; it
// is never held across a distance computation (see searchForIndexing and
// the Searcher implementations), so one slow distance call cannot
// serialize unrelated traversals.
type Node struct {
	InternalID uint32
	Object     space.Object

	mu      sync.Mutex
	friends []*Node
}

// NewNode creates a friendless node for object at internalID.
func NewNode(internalID uint32, object space.Object) *Node {
	return &Node{InternalID: internalID, Object: object}
}

// AddFriend appends f to this node's friend list under lock. checkDup, if
// true, skips the append when f is already present; the loader's second
// pass sets this to false, since a freshly loaded friend list is known
// to be duplicate-free.
func (n *Node) AddFriend(f *Node, checkDup bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if checkDup {
		for _, existing := range n.friends {
			if existing == f {
				return
			}
		}
	}
	n.friends = append(n.friends, f)
}

// SnapshotFriends copies the current friend list into dst, reusing its
// backing array when it has enough capacity, and returns the resulting
// slice. The lock covers only the copy, never the distance computations
// a caller performs afterward.
func (n *Node) SnapshotFriends(dst []*Node) []*Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	if cap(dst) < len(n.friends) {
		dst = make([]*Node, len(n.friends))
	}
	dst = dst[:len(n.friends)]
	copy(dst, n.friends)
	return dst
}

// FriendCount returns the current number of friends, under lock.
func (n *Node) FriendCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.friends)
}
