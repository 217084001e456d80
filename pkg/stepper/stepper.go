// Package stepper drives a VM one instruction at a time for interactive
// front ends. It keeps the disassembly listing, the captured output and the
// last failure together so a UI only has to render them.
package stepper

import (
	"bytes"
	"strings"

	"skard/pkg/chunk"
	"skard/pkg/disasm"
	"skard/pkg/vm"
)

// Row is one line of the listing.
type Row struct {
	Offset int
	Text   string
}

type Session struct {
	Chunk *chunk.Chunk
	VM    *vm.VM
	Err   error

	out     bytes.Buffer
	listing []Row
}

func New(c *chunk.Chunk) *Session {
	s := &Session{Chunk: c, VM: vm.New()}
	s.VM.Output = &s.out
	for offset := 0; offset < c.Len(); {
		text, next := disasm.Format(c, offset)
		s.listing = append(s.listing, Row{Offset: offset, Text: text})
		offset = next
	}
	s.Reset()
	return s
}

// Reset rewinds the machine and clears output and errors.
func (s *Session) Reset() {
	s.VM.Load(s.Chunk)
	s.out.Reset()
	s.Err = nil
}

// Done reports whether the machine halted, successfully or not.
func (s *Session) Done() bool { return s.VM.Halted }

// Step executes one instruction. It returns false once the machine is done.
func (s *Session) Step() bool {
	if s.Done() {
		return false
	}
	if err := s.VM.Step(); err != nil {
		s.Err = err
	}
	return !s.Done()
}

// Run steps until the machine halts.
func (s *Session) Run() {
	for s.Step() {
	}
}

// Listing is the disassembly, one row per instruction.
func (s *Session) Listing() []Row { return s.listing }

// Current is the index in Listing of the next instruction, or -1 when the
// instruction pointer is not at the start of a listed instruction.
func (s *Session) Current() int {
	ip := s.VM.IP()
	for i, r := range s.listing {
		if r.Offset == ip {
			return i
		}
	}
	return -1
}

// Output returns everything DUMP printed, one value per line.
func (s *Session) Output() []string {
	text := strings.TrimSuffix(s.out.String(), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// Status is a one-line summary for a status bar.
func (s *Session) Status() string {
	switch {
	case s.Err != nil:
		return "error: " + s.Err.Error()
	case s.Done():
		return "halted: " + vm.ResultOK.String()
	}
	return "ready"
}
