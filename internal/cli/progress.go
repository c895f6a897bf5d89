package cli

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"

	"github.com/ravden/gphotos-downloader/internal/download"
	"github.com/ravden/gphotos-downloader/internal/model"
)

// attachProgressBar wires a per-scope item bar into the manager. A new
// bar is created when a scope starts and advances one tick per
// completed item, naming the most recent file in the description.
func attachProgressBar(manager *download.Manager) {
	var bar *progressbar.ProgressBar
	var scope model.Scope

	manager.OnScopeStart = func(s model.Scope, total int, fromCache bool) {
		scope = s
		bar = progressbar.NewOptions(total,
			progressbar.OptionSetDescription(fmt.Sprintf("Downloading %s", s)),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetWidth(50),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(100),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprint(os.Stderr, "\n")
			}),
			progressbar.OptionSetRenderBlankState(true),
		)
	}

	manager.OnResult = func(res download.Result) {
		if bar == nil {
			return
		}
		_ = bar.Add(1)
		if res.Outcome == download.Downloaded {
			bar.Describe(fmt.Sprintf("Downloading %s — %s (%s)",
				scope, res.Item.Filename, download.FormatBytes(res.Bytes)))
		}
	}
}
