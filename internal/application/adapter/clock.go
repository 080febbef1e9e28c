// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "time"

// Clock supplies the current time. The occurrence synchronizer depends on it
// instead of time.Now so that open-ended horizon computation stays
// deterministic under test.
type Clock interface {
	Now() time.Time
}
