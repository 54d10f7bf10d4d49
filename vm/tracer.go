// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.
//
// The N42 library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The N42 library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the N42 library. If not, see <http://www.gnu.org/licenses/>.

package vm

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// StructLogEntry is one EIP-3155 JSONL trace record: the execution state
// immediately before an opcode runs.
type StructLogEntry struct {
	Pc         uint64   `json:"pc"`
	Op         string   `json:"op"`
	Gas        uint64   `json:"gas"`
	GasCost    uint64   `json:"gasCost"`
	Stack      []string `json:"stack"`
	MemSize    int      `json:"memSize"`
	Depth      int      `json:"depth"`
	ReturnData string   `json:"returnData,omitempty"`
	Refund     uint64   `json:"refund"`
	Storage    map[string]string `json:"storage,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// StructLogger implements Tracer, emitting one StructLogEntry per
// instruction as a JSON line, matching the EIP-3155 stream format used to
// diff execution traces against reference implementations. Every run gets a
// fresh UUID, written in the run's header line by CaptureStart; the step
// entries themselves do not carry it.
type StructLogger struct {
	out       io.Writer
	runID     string
	enableMem bool
	refund    func() uint64
}

// NewStructLogger returns a logger writing one JSON object per line to out.
// enableMemory is stored on the logger, but no entry carries memory
// contents, only memSize; refund, if non-nil, is consulted to populate the
// refund field from the active StateDB.
func NewStructLogger(out io.Writer, enableMemory bool, refund func() uint64) *StructLogger {
	return &StructLogger{out: out, runID: uuid.NewString(), enableMem: enableMemory, refund: refund}
}

// RunID returns the UUID written in this logger's run header line, for
// correlating a trace file with the run that produced it.
func (l *StructLogger) RunID() string { return l.runID }

func (l *StructLogger) CaptureStart(from, to [20]byte, create bool, input []byte, gas uint64, value []byte) {
	fmt.Fprintf(l.out, "# run=%s from=%x to=%x create=%t gas=%d\n", l.runID, from, to, create, gas)
}

func (l *StructLogger) CaptureState(pc uint64, op OpCode, gas, cost uint64, scope *ScopeContext, rData []byte, depth int, err error) {
	data := scope.Stack.Data()
	stack := make([]string, len(data))
	for i := range data {
		b := data[i].Bytes32()
		stack[i] = "0x" + bytesToHex(b[:])
	}
	entry := StructLogEntry{
		Pc:      pc,
		Op:      op.String(),
		Gas:     gas,
		GasCost: cost,
		Stack:   stack,
		MemSize: scope.Memory.Len(),
		Depth:   depth,
	}
	if l.refund != nil {
		entry.Refund = l.refund()
	}
	if len(rData) > 0 {
		entry.ReturnData = "0x" + bytesToHex(rData)
	}
	if err != nil {
		entry.Error = err.Error()
	}
	l.emit(entry)
}

func (l *StructLogger) CaptureFault(pc uint64, op OpCode, gas, cost uint64, scope *ScopeContext, depth int, err error) {
	entry := StructLogEntry{
		Pc:      pc,
		Op:      op.String(),
		Gas:     gas,
		GasCost: cost,
		MemSize: scope.Memory.Len(),
		Depth:   depth,
		Error:   err.Error(),
	}
	l.emit(entry)
}

func (l *StructLogger) CaptureEnd(output []byte, gasUsed uint64, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	fmt.Fprintf(l.out, "{\"output\":\"0x%s\",\"gasUsed\":%d,\"error\":%q}\n", bytesToHex(output), gasUsed, errMsg)
}

func (l *StructLogger) emit(entry StructLogEntry) {
	b, err := json.Marshal(entry)
	if err != nil {
		return
	}
	l.out.Write(b)
	io.WriteString(l.out, "\n")
}

func bytesToHex(b []byte) string {
	var sb strings.Builder
	const hexdigits = "0123456789abcdef"
	for _, c := range b {
		sb.WriteByte(hexdigits[c>>4])
		sb.WriteByte(hexdigits[c&0xf])
	}
	return sb.String()
}

var _ Tracer = (*StructLogger)(nil)
