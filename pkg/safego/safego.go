package safego

import "github.com/Murilinho145SG/Routs/pkg/e"

func Go(fn func()) {
	go func() {
		defer e.OnError("safeGo")

		fn()
	}()
}
