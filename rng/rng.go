package rng

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// Source is the randomness consumed by game setup, search and self-play.
type Source interface {
	Intn(n int) int
	Float64() float64
	Perm(n int) []int
	Shuffle(n int, swap func(i, j int))
}

// PCG is a Source whose generator state can be saved and restored, so runs
// are reproducible and resumable.
type PCG struct {
	*rand.Rand
	src *rand.PCGSource
}

func New(seed uint64) *PCG {
	src := &rand.PCGSource{}
	src.Seed(seed)
	return &PCG{Rand: rand.New(src), src: src}
}

// FromSnapshot returns a PCG positioned where Snapshot was taken.
func FromSnapshot(snapshot []byte) (*PCG, error) {
	p := New(0)
	if err := p.Restore(snapshot); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *PCG) Snapshot() ([]byte, error) {
	b, err := p.src.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot generator: %w", err)
	}
	return b, nil
}

func (p *PCG) Restore(snapshot []byte) error {
	if err := p.src.UnmarshalBinary(snapshot); err != nil {
		return fmt.Errorf("failed to restore generator: %w", err)
	}
	return nil
}

// Clone returns an independent generator in the same state.
func (p *PCG) Clone() *PCG {
	snapshot, err := p.Snapshot()
	if err != nil {
		panic(err)
	}
	clone, err := FromSnapshot(snapshot)
	if err != nil {
		panic(err)
	}
	return clone
}
