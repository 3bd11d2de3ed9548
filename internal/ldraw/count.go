package ldraw

// counter walks the registry for one CountInstances pass.
type counter struct {
	r      *Registry
	stack  []string
	cycles []*CycleError
}

// CountInstances recomputes the instance, mirrored instance and step counts of every
// model reachable from the top level model.
//
// A model placed more than once is walked only the first time; later placements just
// add to its counts. Parts inside a CALLOUT BEGIN ... END window make the walked model
// contribute a step but do not add ordinary instances for the models they place.
// References that lead back to a model still being walked are reported and skipped.
func (r *Registry) CountInstances() []*CycleError {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, k := range r.order {
		f := r.files[k]
		f.Instances = 0
		f.MirrorInstances = 0
		f.beenCounted = false
	}

	top := r.topLevel()
	if top == "" {
		return nil
	}
	c := &counter{r: r}
	c.count(top, false, false)

	r.counterLog.Debug("Counted instances", "top", top, "models", len(r.order), "cycles", len(c.cycles))
	return c.cycles
}

func (c *counter) count(name string, mirrored, callout bool) {
	k := key(name)
	f, ok := c.r.files[k]
	if !ok {
		return
	}
	if i := indexOf(c.stack, k); i >= 0 {
		path := append(append([]string(nil), c.stack[i:]...), k)
		c.cycles = append(c.cycles, &CycleError{Path: path})
		c.r.cycle("count", path)
		return
	}
	if f.beenCounted {
		f.addInstance(mirrored)
		return
	}

	c.stack = append(c.stack, k)
	defer func() { c.stack = c.stack[:len(c.stack)-1] }()

	firstPlacement := func() int {
		if (mirrored && f.MirrorInstances == 0) || (!mirrored && f.Instances == 0) {
			return 1
		}
		return 0
	}

	var partsAdded, noStep, stepIgnore bool
	f.NumSteps = 0
	for i := 0; i < len(f.Contents); i++ {
		argv := split(f.Contents[i])
		switch {
		case isLPub(argv, "CALLOUT", "BEGIN"):
			partsAdded = true
			for i++; i < len(f.Contents); i++ {
				argv = split(f.Contents[i])
				if len(argv) == 15 && argv[0] == "1" {
					if c.r.contains(argv[14]) && !stepIgnore {
						c.count(argv[14], Mirrored(argv), true)
					}
				} else if isLPub(argv, "CALLOUT", "END") {
					break
				}
			}
		case isLPub(argv, "PART", "BEGIN", "IGN"):
			stepIgnore = true
		case isLPub(argv, "PART", "END"):
			stepIgnore = false
		case isLPub(argv, "NOSTEP"):
			noStep = true
		case len(argv) >= 2 && argv[0] == "0" && (argv[1] == "STEP" || argv[1] == "ROTSTEP"):
			if partsAdded && !noStep {
				f.NumSteps += firstPlacement()
			}
			partsAdded = false
			noStep = false
		case len(argv) == 15 && argv[0] == "1":
			if c.r.contains(argv[14]) && !stepIgnore {
				c.count(argv[14], Mirrored(argv), false)
			}
			partsAdded = true
		}
	}
	if partsAdded && !noStep {
		f.NumSteps += firstPlacement()
	}
	if !callout {
		f.addInstance(mirrored)
	}
	f.beenCounted = true
}

func (f *SubFile) addInstance(mirrored bool) {
	if mirrored {
		f.MirrorInstances++
	} else {
		f.Instances++
	}
}

func (r *Registry) contains(name string) bool {
	_, ok := r.lookup(name)
	return ok
}
