package dynamics

import "errors"

// ErrDegenerate indicates a linear system whose matrix is structurally
// singular for the declared topology. It cannot occur for the fixed
// five-link chain but is checked rather than assumed.
var ErrDegenerate = errors.New("dynamics: structurally singular system")
