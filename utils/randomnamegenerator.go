package utils

import (
	"math/rand"
	"sync"

	"github.com/Pallinder/go-randomdata"
)

var seedOnce sync.Once

// lockedSource lets namers on different goroutines share the randomdata generator.
type lockedSource struct {
	lock sync.Mutex
	src  rand.Source
}

func (s *lockedSource) Int63() int64 {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.src.Int63()
}

func (s *lockedSource) Seed(seed int64) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.src.Seed(seed)
}

// seedNames makes generated names repeat from run to run. The seed is applied
// once per process, later namers continue the same sequence.
func seedNames() {
	seedOnce.Do(func() {
		randomdata.CustomRand(rand.New(&lockedSource{src: rand.NewSource(0)}))
	})
}

// NodeNamer hands out unique node names. Reserve known names first so generated
// ones never collide with them. A NodeNamer is not safe for concurrent use,
// separate namers are.
type NodeNamer map[string]struct{}

func (nn *NodeNamer) init() {
	if *nn == nil {
		*nn = make(map[string]struct{})
		seedNames()
	}
}

// Reserve marks name as used and reports whether it was free.
func (nn *NodeNamer) Reserve(name string) bool {
	nn.init()
	if _, exists := (*nn)[name]; exists {
		return false
	}
	(*nn)[name] = struct{}{}
	return true
}

func (nn *NodeNamer) RandomName() string {
	nn.init()
	for {
		name := randomdata.SillyName()
		if nn.Reserve(name) {
			return name
		}
	}
}
