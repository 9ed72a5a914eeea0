package fill

import "errors"

// ErrInfeasible reports that the search exhausted every ordering without
// finding an assignment consistent with the dictionary. It is a first-class
// result, not a structural defect of the input.
var ErrInfeasible = errors.New("fill: no assignment satisfies the dictionary")

// ErrCancelled reports that ctx was done before a fill completed. Any
// speculative writes are rolled back before Fill returns; the grid passed
// in is left exactly as it was given.
var ErrCancelled = errors.New("fill: cancelled")
