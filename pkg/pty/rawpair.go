package pty

import "os"

// RawPair is a master/slave PTY pair with no child attached: the
// caller is responsible for opening (and owning) the slave side
// itself. It exists for callers — and tests — that want to drive the
// slave through some other consumer (a serial library, a second
// process they spawn themselves) instead of through Spawn's exec.
type RawPair struct {
	Master    *os.File
	SlavePath string

	m *master
}

// OpenRawPair opens a fresh master/slave PTY pair and performs the
// same grant/unlock/resolve sequence Spawn does, but stops short of
// opening the slave or execing a child. Only one consumer should open
// the slave path at a time; opening it from two places at once races
// for the same read/write queues.
func OpenRawPair() (*RawPair, error) {
	m, err := openMaster()
	if err != nil {
		return nil, err
	}
	if err := m.grantSlave(); err != nil {
		m.Close()
		return nil, err
	}
	if err := m.unlockSlave(); err != nil {
		m.Close()
		return nil, err
	}
	slavePath, err := m.slaveName()
	if err != nil {
		m.Close()
		return nil, err
	}

	masterFile, err := m.fileHandle()
	if err != nil {
		m.Close()
		return nil, err
	}

	return &RawPair{Master: masterFile, SlavePath: slavePath, m: m}, nil
}

// Close closes both the returned master handle and the pair's own
// internal master descriptor.
func (p *RawPair) Close() error {
	masterErr := p.Master.Close()
	mErr := p.m.Close()
	if masterErr != nil {
		return masterErr
	}
	return mErr
}
