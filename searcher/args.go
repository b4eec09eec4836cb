package searcher

import "time"

// Defaults for one move decision

const DefaultTimeBudget = 200 * time.Millisecond

// Plies are numbered from 0 at the root; a ply deeper than the cap is a leaf.
const DefaultPlyCap = 3
