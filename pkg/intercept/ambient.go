// SPDX-License-Identifier: MPL-2.0

package intercept

import (
	"fmt"
	"os"

	"github.com/biglinux/libchildenv/pkg/childenv"
)

// installAmbient replaces the process environment with env and returns a
// function that reinstates snapshot. If one entry cannot be set, the partial
// state is rolled back to snapshot and the failure is reported with nothing
// left installed, so the caller fails closed.
//
// The setenv interface cannot represent every entry shape: a bare name comes
// back as "NAME=" and duplicate names collapse to the last one. Environments
// taken from a real process round-trip exactly.
func (ic *Interceptor) installAmbient(snapshot, env []string) (restore func(), err error) {
	set := ic.setenvFn()
	clear := ic.clearenvFn()

	reinstate := func() {
		clear()
		for _, entry := range snapshot {
			name, value, _ := childenv.Split(entry)
			// Best effort: the snapshot was in place moments ago.
			_ = set(name, value)
		}
	}

	clear()
	for _, entry := range env {
		name, value, _ := childenv.Split(entry)
		if err := set(name, value); err != nil {
			reinstate()
			return nil, fmt.Errorf("install %s: %w", name, err)
		}
	}
	return reinstate, nil
}

func (ic *Interceptor) setenvFn() func(key, value string) error {
	if ic.setenv != nil {
		return ic.setenv
	}
	return os.Setenv
}

func (ic *Interceptor) clearenvFn() func() {
	if ic.clearenv != nil {
		return ic.clearenv
	}
	return os.Clearenv
}
