package rendering

import (
	"errors"
	"fmt"
	"log/slog"
)

var ErrProgramReleased = errors.New("program is not retained")

// Program is a linked shader program that can be shared between objects.
// Objects retain it while they use it; the GL program is deleted when the
// last reference is released, or by Drop if nobody ever retained it.
type Program struct {
	name    string
	handle  uint32
	driver  Driver
	refs    int
	deleted bool
}

func NewProgram(name string, driver Driver, handle uint32) *Program {
	return &Program{
		name:   name,
		handle: handle,
		driver: driver,
	}
}

func (p *Program) Name() string {
	return p.name
}

func (p *Program) Handle() uint32 {
	return p.handle
}

func (p *Program) Refs() int {
	return p.refs
}

func (p *Program) Deleted() bool {
	return p.deleted
}

func (p *Program) Retain() {
	p.refs++
}

func (p *Program) Release() error {
	if p.deleted || p.refs == 0 {
		return fmt.Errorf("releasing %s: %w", p.name, ErrProgramReleased)
	}
	p.refs--
	if p.refs == 0 {
		p.delete()
	}
	return nil
}

// Drop deletes the program if no object holds a reference to it. It reports
// whether the program was deleted by this call.
func (p *Program) Drop() bool {
	if p.deleted || p.refs > 0 {
		return false
	}
	p.delete()
	return true
}

func (p *Program) delete() {
	slog.Debug(fmt.Sprintf("deleting shader program %s", p.name), "module", "rendering", "handle", p.handle)
	p.driver.DeleteProgram(p.handle)
	p.deleted = true
}
