package spinners

import (
	"io"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/openshift-eng/iib-setup/internal/pkg/emoji"
)

func positionSpinnerLeft(original mpb.BarFiller) mpb.BarFiller {
	return mpb.SpinnerStyle("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏", " ").PositionLeft().Build()
}

func emptyDecorator() decor.Decorator {
	return decor.Any(func(s decor.Statistics) string {
		return ""
	})
}

func barFillerClearOnAbort() mpb.BarOption {
	return mpb.BarFillerMiddleware(func(base mpb.BarFiller) mpb.BarFiller {
		return mpb.BarFillerFunc(func(w io.Writer, st decor.Statistics) error {
			if st.Aborted {
				_, err := io.WriteString(w, "")
				return err
			}
			return base.Fill(w, st)
		})
	})
}

func addSpinner(progressBar *mpb.Progress, message string) *mpb.Bar {
	return progressBar.AddSpinner(
		1, mpb.BarFillerMiddleware(positionSpinnerLeft),
		mpb.BarWidth(3),
		mpb.PrependDecorators(
			decor.OnComplete(emptyDecorator(), emoji.SpinnerCheckMark),
			decor.OnAbort(emptyDecorator(), emoji.SpinnerCrossMark),
		),
		mpb.AppendDecorators(
			decor.Name("("),
			decor.Elapsed(decor.ET_STYLE_GO),
			decor.Name(") "+message+" "),
		),
		mpb.BarFillerClearOnComplete(),
		barFillerClearOnAbort(),
	)
}

// Run decorates fn with a spinner while it is in flight. The spinner is
// only rendered on a terminal, the progress container writes nothing
// when stdout is redirected.
func Run(message string, isTerminal bool, fn func() error) error {
	p := mpb.New(mpb.ContainerOptional(mpb.WithOutput(io.Discard), !isTerminal))
	spinner := addSpinner(p, message)
	if err := fn(); err != nil {
		spinner.Abort(false)
		p.Wait()
		return err
	}
	spinner.Increment()
	p.Wait()
	return nil
}
