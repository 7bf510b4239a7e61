package debug

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"github.com/dcrodman/edes/internal/edes"
)

// StartPprofServer starts the default pprof HTTP server on localhost so that
// profiles can be captured while a long speed run executes. The server is
// shut down when ctx is cancelled. See https://golang.org/pkg/net/http/pprof/
func StartPprofServer(ctx context.Context, logger *logrus.Logger, port int) {
	listenerAddr := fmt.Sprintf("localhost:%d", port)
	logger.Infof("starting pprof server on %s", listenerAddr)

	srv := &http.Server{Addr: listenerAddr}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("error starting pprof server: %s", err)
		}
	}()
	go func() {
		<-ctx.Done()
		srv.Close()
	}()
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// DumpSBoxes writes the tables derived from password to the logger at debug
// level. This exposes key-equivalent material and exists for comparing
// implementations against known test passwords.
func DumpSBoxes(logger *logrus.Logger, password []byte) error {
	if !logger.IsLevelEnabled(logrus.DebugLevel) {
		return nil
	}
	sboxes, err := edes.Schedule(password)
	if err != nil {
		return err
	}
	defer sboxes.Wipe()

	for i := range sboxes {
		logger.Debugf("S-box %02d:\n%s", i, dumpConfig.Sdump(sboxes[i][:]))
	}
	return nil
}
