package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/jsievers/mailbridge/internal/gmail"
)

// renderSummaries prints message listings as an aligned table. Unread
// messages are marked with an asterisk in the first column.
func renderSummaries(w io.Writer, summaries []gmail.MessageSummary) {
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No messages found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, " \tID\tFROM\tSUBJECT\tDATE")
	for _, s := range summaries {
		marker := " "
		if s.Unread {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", marker, s.ID, s.From, s.Subject, s.Date)
	}
	tw.Flush()
}

func renderLabels(w io.Writer, labels []gmail.Label) {
	if len(labels) == 0 {
		fmt.Fprintln(w, "No labels found.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE")
	for _, l := range labels {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", l.ID, l.Name, l.Type)
	}
	tw.Flush()
}

func renderMessage(w io.Writer, msg *gmail.MessageContent) {
	fmt.Fprintf(w, "From:    %s\n", msg.From)
	fmt.Fprintf(w, "To:      %s\n", msg.To)
	if msg.Cc != "" {
		fmt.Fprintf(w, "Cc:      %s\n", msg.Cc)
	}
	fmt.Fprintf(w, "Date:    %s\n", msg.Date)
	fmt.Fprintf(w, "Subject: %s\n", msg.Subject)
	if len(msg.Labels) > 0 {
		fmt.Fprintf(w, "Labels:  %s\n", strings.Join(msg.Labels, ", "))
	}
	fmt.Fprintf(w, "\n%s\n", msg.Body)

	if len(msg.Attachments) > 0 {
		fmt.Fprintf(w, "\nAttachments:\n")
		for _, a := range msg.Attachments {
			fmt.Fprintf(w, "  %s (%s, %d bytes)\n", a.Filename, a.MimeType, a.Size)
		}
	}
}

func renderThread(w io.Writer, thread *gmail.Thread) {
	fmt.Fprintf(w, "Thread %s: %s (%d messages)\n", thread.ID, thread.Subject, len(thread.Messages))
	for i := range thread.Messages {
		fmt.Fprintf(w, "\n--- Message %d of %d ---\n", i+1, len(thread.Messages))
		renderMessage(w, &thread.Messages[i])
	}
}
