package swrand

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/arcaneiq/swrand/core"
	"github.com/arcaneiq/swrand/space"
)

const methodName = "small_world_rand"

// SaveIndex writes the graph to path in a fixed text format: a two-line
// header, one entry line per node in ascending object-id order, a blank
// line, and a trailing LineQty field equal to the total line count
// including itself. This exact wire format is why
// persistence uses bufio/os directly rather than a pack serialization
// library: no general-purpose codec produces this particular shape.
func SaveIndex(path string, registry *NodeRegistry, nn uint) error {
	f, err := os.Create(path)
	if err != nil {
		return core.NewError(core.KindIO, "SaveIndex", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	lineCount := 0
	writeLine := func(s string) error {
		if _, err := w.WriteString(s); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
		lineCount++
		return nil
	}

	if err := writeLine(fmt.Sprintf("MethodDescription\t%s", methodName)); err != nil {
		return core.NewError(core.KindIO, "SaveIndex", err)
	}
	if err := writeLine(fmt.Sprintf("NN\t%d", nn)); err != nil {
		return core.NewError(core.KindIO, "SaveIndex", err)
	}

	var writeErr error
	registry.Ascend(func(node *Node) bool {
		friends := node.SnapshotFriends(nil)
		var sb strings.Builder
		fmt.Fprintf(&sb, "%d:%d:", node.InternalID, node.Object.ID())
		for _, fr := range friends {
			sb.WriteByte(' ')
			fmt.Fprintf(&sb, "%d", fr.InternalID)
		}
		if err := writeLine(sb.String()); err != nil {
			writeErr = err
			return false
		}
		return true
	})
	if writeErr != nil {
		return core.NewError(core.KindIO, "SaveIndex", writeErr)
	}

	if err := writeLine(""); err != nil {
		return core.NewError(core.KindIO, "SaveIndex", err)
	}
	if err := writeLine(fmt.Sprintf("LineQty\t%d", lineCount+1)); err != nil {
		return core.NewError(core.KindIO, "SaveIndex", err)
	}
	if err := w.Flush(); err != nil {
		return core.NewError(core.KindIO, "SaveIndex", err)
	}
	return nil
}

// loadEntry is one parsed entry line, held in memory between the scan
// and the friend-linking pass.
type loadEntry struct {
	internalID uint32
	friends    []uint32
}

// parseEntryLine splits "<iid>:<oid>: <friend-iid> <friend-iid> ..." into
// its three fields.
func parseEntryLine(line string) (internalID uint32, objectID int64, friends []uint32, err error) {
	firstColon := strings.IndexByte(line, ':')
	if firstColon < 0 {
		return 0, 0, nil, fmt.Errorf("malformed entry line %q: missing ':'", line)
	}
	rest := line[firstColon+1:]
	secondColon := strings.IndexByte(rest, ':')
	if secondColon < 0 {
		return 0, 0, nil, fmt.Errorf("malformed entry line %q: missing second ':'", line)
	}
	iid64, err := strconv.ParseUint(line[:firstColon], 10, 32)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("malformed internal id in %q: %w", line, err)
	}
	oid, err := strconv.ParseInt(rest[:secondColon], 10, 64)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("malformed object id in %q: %w", line, err)
	}
	if tail := strings.TrimSpace(rest[secondColon+1:]); tail != "" {
		for _, tok := range strings.Fields(tail) {
			f64, err := strconv.ParseUint(tok, 10, 32)
			if err != nil {
				return 0, 0, nil, fmt.Errorf("malformed friend id %q in %q: %w", tok, line, err)
			}
			friends = append(friends, uint32(f64))
		}
	}
	return uint32(iid64), oid, friends, nil
}

// LoadIndex rebuilds a registry from the file at path, cross-checking
// every entry against data (indexed by internal id) to detect dataset
// mutation since save. It follows a two-pass discipline: every node is
// created and published before any friend edge is linked,
// so a forward reference to a not-yet-seen internal id always resolves.
func LoadIndex(path string, data []space.Object) (*NodeRegistry, uint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, core.NewError(core.KindIO, "LoadIndex", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)
	lineCount := 0
	readLine := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		lineCount++
		return scanner.Text(), true
	}

	line, ok := readLine()
	if !ok {
		return nil, 0, core.Errorf(core.KindIO, "LoadIndex", "empty file")
	}
	if line != "MethodDescription\t"+methodName {
		return nil, 0, core.Errorf(core.KindInvariant, "LoadIndex", "unexpected method description line %q", line)
	}

	line, ok = readLine()
	if !ok {
		return nil, 0, core.Errorf(core.KindIO, "LoadIndex", "truncated file: missing NN line")
	}
	nnStr, found := strings.CutPrefix(line, "NN\t")
	if !found {
		return nil, 0, core.Errorf(core.KindInvariant, "LoadIndex", "malformed NN line %q", line)
	}
	nn64, err := strconv.ParseUint(nnStr, 10, 32)
	if err != nil {
		return nil, 0, core.Errorf(core.KindInvariant, "LoadIndex", "malformed NN value %q: %v", nnStr, err)
	}
	nn := uint(nn64)

	registry := NewNodeRegistry()
	nodesByID := make(map[uint32]*Node, len(data))
	var entries []loadEntry

	for {
		line, ok = readLine()
		if !ok {
			return nil, 0, core.Errorf(core.KindIO, "LoadIndex", "truncated file: missing trailer")
		}
		if line == "" {
			break
		}
		iid, oid, friends, perr := parseEntryLine(line)
		if perr != nil {
			return nil, 0, core.NewError(core.KindInvariant, "LoadIndex", perr)
		}
		if int(iid) >= len(data) {
			return nil, 0, core.Errorf(core.KindInvariant, "LoadIndex", "internal id %d >= dataset size %d", iid, len(data))
		}
		if data[iid].ID() != oid {
			return nil, 0, core.Errorf(core.KindInvariant, "LoadIndex", "dataset mutated: internal id %d now maps to object %d, file expects %d", iid, data[iid].ID(), oid)
		}
		node := NewNode(iid, data[iid])
		nodesByID[iid] = node
		registry.Insert(node)
		entries = append(entries, loadEntry{internalID: iid, friends: friends})
	}

	line, ok = readLine()
	if !ok {
		return nil, 0, core.Errorf(core.KindIO, "LoadIndex", "truncated file: missing LineQty trailer")
	}
	qtyStr, found := strings.CutPrefix(line, "LineQty\t")
	if !found {
		return nil, 0, core.Errorf(core.KindInvariant, "LoadIndex", "malformed LineQty line %q", line)
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil {
		return nil, 0, core.Errorf(core.KindInvariant, "LoadIndex", "malformed LineQty value %q: %v", qtyStr, err)
	}
	if qty != lineCount {
		return nil, 0, core.Errorf(core.KindIO, "LoadIndex", "line count mismatch: read %d lines, trailer claims %d", lineCount, qty)
	}

	for _, e := range entries {
		node := nodesByID[e.internalID]
		for _, fiid := range e.friends {
			friend, ok := nodesByID[fiid]
			if !ok {
				return nil, 0, core.Errorf(core.KindInvariant, "LoadIndex", "friend id %d referenced by node %d not found", fiid, e.internalID)
			}
			node.AddFriend(friend, false)
		}
	}

	return registry, nn, nil
}
