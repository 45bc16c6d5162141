package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/harunnryd/shoki/internal/assistant"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive assistant session",
	RunE: func(cmd *cobra.Command, args []string) error {
		audioFlag, _ := cmd.Flags().GetBool("audio")
		wantAudio := audioFlag || cfg.Audio.Enabled

		comps, err := buildComponents(cmd.Context(), cfg, wantAudio)
		if err != nil {
			return err
		}
		defer comps.close()

		session, err := comps.newSession(cfg, wantAudio)
		if err != nil {
			return err
		}

		return runREPL(cmd, session)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("audio", false, "voice the answer when the request asks for it")
}

var (
	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 2)
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)
)

const bannerText = `Shoki — office assistant

I can file requests for you: day off, work from home, late arrival,
overtime, office assets, and meeting room bookings.
I also answer company policy questions.

Type 'exit' to quit.`

func runREPL(cmd *cobra.Command, session *assistant.Session) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, bannerStyle.Render(bannerText))

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		renderer = nil
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	for {
		fmt.Fprint(out, promptStyle.Render("You:")+" ")

		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "exit") {
			fmt.Fprintln(out, "Goodbye!")
			return nil
		}

		result := session.Process(cmd.Context(), line)
		fmt.Fprintln(out, renderAnswer(renderer, result))
	}
}

func renderAnswer(renderer *glamour.TermRenderer, result assistant.TurnResult) string {
	answer := result.Answer
	if answer == "" {
		answer = "Sorry, I could not produce an answer. Please try again."
	}

	if renderer != nil {
		if rendered, err := renderer.Render(answer); err == nil {
			return strings.TrimRight(rendered, "\n")
		}
	}
	return answer
}
