package kernel

import (
	"fmt"
	"math"

	"github.com/nqsim-project/nqsim/core"
)

func checkProbability(name string, p float64) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("%s probability %v out of [0,1]: %w", name, p, core.ErrInvalidNoise)
	}
	return nil
}

func (k *Kernel) applyPauli(qn, which int) error {
	switch which {
	case 0:
		return nil
	case 1:
		return k.ApplyUnitary1Q(qn, XMatrix(), nil, false)
	case 2:
		return k.ApplyUnitary1Q(qn, YMatrix(), nil, false)
	default:
		return k.ApplyUnitary1Q(qn, ZMatrix(), nil, false)
	}
}

// depolarizing draws r; at r>=p it is a no-op, otherwise it applies X,
// Y or Z on an equal one-third split of the remaining mass.
func (k *Kernel) depolarizing(qn int, p float64) error {
	if err := checkProbability("depolarizing", p); err != nil {
		return err
	}
	r := k.rng.Float64()
	if r >= p {
		return nil
	}
	switch {
	case r < p/3:
		return k.ApplyUnitary1Q(qn, XMatrix(), nil, false)
	case r < 2*p/3:
		return k.ApplyUnitary1Q(qn, YMatrix(), nil, false)
	default:
		return k.ApplyUnitary1Q(qn, ZMatrix(), nil, false)
	}
}

// bitflip draws r; at r>=p it is a no-op, otherwise it applies X.
func (k *Kernel) bitflip(qn int, p float64) error {
	if err := checkProbability("bitflip", p); err != nil {
		return err
	}
	if k.rng.Float64() >= p {
		return nil
	}
	return k.ApplyUnitary1Q(qn, XMatrix(), nil, false)
}

// phaseflip draws r; at r>=p it is a no-op, otherwise it applies Z.
func (k *Kernel) phaseflip(qn int, p float64) error {
	if err := checkProbability("phaseflip", p); err != nil {
		return err
	}
	if k.rng.Float64() >= p {
		return nil
	}
	return k.ApplyUnitary1Q(qn, ZMatrix(), nil, false)
}

// twoQubitDepolarizing draws r; at r>=p it is a no-op, otherwise it
// picks one of the 15 nontrivial Pauli-tensor-Pauli combinations
// uniformly, splitting the draw into a qn1 component (depolCase%4) and
// a qn2 component (depolCase/4).
func (k *Kernel) twoQubitDepolarizing(qn1, qn2 int, p float64) error {
	if err := checkProbability("two-qubit depolarizing", p); err != nil {
		return err
	}
	r := k.rng.Float64()
	if r >= p {
		return nil
	}
	depolCase := int(15*r/p) + 1
	if depolCase > 15 {
		depolCase = 15
	}
	if err := k.applyPauli(qn1, depolCase%4); err != nil {
		return err
	}
	return k.applyPauli(qn2, depolCase/4)
}

// damping applies amplitude damping with decay probability gamma. It
// sums the decay mass p0 and surviving mass p1 over every basis index
// with qn set, checks the three-way split against the ground-state mass
// still sums to 1, then draws once to decide the branch: on decay it
// moves each qn=1 amplitude into its qn=0 partner index by overwriting
// the partner rather than adding to it, matching the frozen reference
// behavior; on survival it scales the qn=1 amplitudes by sqrt(1-gamma).
// Either branch ends with a renormalization.
func (k *Kernel) damping(qn int, gamma float64) error {
	if err := checkProbability("damping", gamma); err != nil {
		return err
	}
	bit := k.bitOf(qn)
	var p0, p1, pGround float64
	for i, a := range k.amplitudes {
		prob := real(a)*real(a) + imag(a)*imag(a)
		if i&bit == 0 {
			pGround += prob
			continue
		}
		p0 += prob * gamma
		p1 += prob * (1 - gamma)
	}
	if math.Abs(pGround+p0+p1-1) > 1e-10 {
		return fmt.Errorf("amplitude damping mass %v drifted from 1 by more than 1e-10: %w", pGround+p0+p1, core.ErrInvalidNoise)
	}
	r := k.rng.Float64()
	if r < p0 {
		for i, a := range k.amplitudes {
			if i&bit == 0 {
				continue
			}
			k.amplitudes[i^bit] = a
			k.amplitudes[i] = 0
		}
	} else {
		scale := complex(math.Sqrt(1-gamma), 0)
		for i := range k.amplitudes {
			if i&bit == 0 {
				continue
			}
			k.amplitudes[i] *= scale
		}
	}
	k.Normalize()
	return nil
}

// resetQubit is kept unexported and undispatched: it pins the reference
// implementation's bug of writing the excited amplitude's squared
// modulus, rather than the amplitude itself, into the ground slot. It
// exists only so a test can document the behavior; nothing in the
// dispatch switch reaches it.
func (k *Kernel) resetQubit(qn int) error {
	if err := k.checkQubit(qn); err != nil {
		return err
	}
	bit := k.bitOf(qn)
	for i, a := range k.amplitudes {
		if i&bit == 0 {
			continue
		}
		prob := real(a)*real(a) + imag(a)*imag(a)
		k.amplitudes[i^bit] = complex(prob, 0)
		k.amplitudes[i] = 0
	}
	k.Normalize()
	return nil
}
