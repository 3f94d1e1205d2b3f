package probe

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github/keymint/go-signer/internal/config"
	"github/keymint/go-signer/internal/util/command"
)

const (
	verboseFlag string = "verbose"
)

func New() *cobra.Command {
	cmd := command.NewSubcommandGroup("probe",
		newLiveness(),
		newReadiness(),
	)
	cmd.PersistentFlags().BoolP(verboseFlag, "v", false, "print the probe response body")

	return cmd
}

// probeEndpoint performs a GET against the management endpoint of the
// locally running server and returns the response body. A non-200 status
// counts as a failed probe.
func probeEndpoint(path string, verbose bool) error {
	cfg := config.DefaultServiceConfigFromEnv()

	host, port, err := net.SplitHostPort(cfg.Echo.ListenAddress)
	if err != nil {
		return errors.Wrap(err, "failed to parse listen address")
	}
	if host == "" {
		host = "localhost"
	}

	client := &http.Client{Timeout: 5 * time.Second}

	res, err := client.Get(fmt.Sprintf("http://%s/-/%s", net.JoinHostPort(host, port), path))
	if err != nil {
		return errors.Wrapf(err, "failed to probe %s", path)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read probe response")
	}

	if verbose {
		fmt.Println(string(body))
	}

	if res.StatusCode != http.StatusOK {
		return errors.Errorf("probe %s returned status %d", path, res.StatusCode)
	}

	return nil
}
