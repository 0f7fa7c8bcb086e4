// scripts/demo/main.go
//
// Demo showing report extraction without requiring any mailbox access.
// It runs the extractor over two canned emails and renders the results
// in every output format.
//
// Usage:
//   go run scripts/demo/main.go

package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"eod-extractor/internal/model"
	"eod-extractor/internal/report/export"
	"eod-extractor/pkg/eod"
)

type sampleEmail struct {
	subject string
	date    time.Time
	body    string
}

var sampleEmails = []sampleEmail{
	{
		subject: "Daily Status Update - 2024-01-15",
		date:    time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC),
		body: `
Hi Team,

Here's my daily status update:

EOD:
- Checking tracker and tickets-20 min
- Team meeting and discussion-30 min
- TLS #49172 - TLS Error- 01:25 hrs
- Discussion with Ritu regarding their ticket-45 min
- TLS#66638-Require to move TLS project from DCPL framework to DFramework-04:20 hrs
- Discuss with Aayush regarding #66912-20 min
- TLS #66951-System Performance Optimization - DO NOT use lock hints such as NOLOCK/ ROWLOCK-02:20 hrs

Thanks,
John
`,
	},
	{
		subject: "Weekly Summary - 2024-01-16",
		date:    time.Date(2024, 1, 16, 17, 0, 0, 0, time.UTC),
		body: `
Team,

End of Day Summary:
• Code review session - 45 min
• Bug fix for issue #12345 - 2.5 hrs
• Client meeting preparation - 30min
• Database optimization task - 01:15 hrs

Best regards,
Sarah
`,
	},
}

func main() {
	fmt.Println("🚀 EOD Email Extractor Demo")
	fmt.Println(strings.Repeat("=", 50))

	extractor, err := eod.NewExtractor(eod.Config{
		Keywords: []string{"EOD", "End of Day", "Daily Summary", "Task Summary", "End of Day Summary"},
	})
	if err != nil {
		log.Fatalf("Failed to build extractor: %v", err)
	}

	fmt.Println("📧 Processing sample emails...")
	fmt.Println()

	var results []model.Extraction
	for i, email := range sampleEmails {
		fmt.Printf("Email %d: %s\n", i+1, email.subject)

		section, found := extractor.Extract(email.body)
		if !found {
			fmt.Println("❌ No EOD section found")
			fmt.Println()
			continue
		}

		fmt.Printf("✅ EOD section found with %d tasks\n", len(section.Tasks))
		for j, task := range section.Tasks {
			timeInfo := ""
			if task.TimeSpent != "" {
				timeInfo = fmt.Sprintf(" (%s)", task.TimeSpent)
			}
			fmt.Printf("   %d. %s%s\n", j+1, task.Description, timeInfo)
		}
		fmt.Println()

		results = append(results, model.Extraction{
			EmailID: fmt.Sprintf("demo_%d", i+1),
			Subject: email.subject,
			Date:    email.date,
			Section: section,
		})
	}

	fmt.Println("📋 Output Format Examples:")
	fmt.Println(strings.Repeat("-", 30))

	for _, format := range []export.Format{export.FormatJSON, export.FormatCSV, export.FormatText} {
		fmt.Printf("\n🔹 %s Format:\n", strings.ToUpper(string(format)))
		if err := export.Write(os.Stdout, results, format); err != nil {
			log.Fatalf("Failed to render %s output: %v", format, err)
		}
	}

	fmt.Println()
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("✨ Demo completed successfully!")
	fmt.Println()
	fmt.Println("To use with real emails:")
	fmt.Println("1. Create config.yaml with your email settings")
	fmt.Println("2. Run: go run ./cmd/extractor run --start '2024-01-01' --end '2024-01-31'")
}
