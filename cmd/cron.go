package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"brightlaptop.GO/config"
	"brightlaptop.GO/cron"
	"brightlaptop.GO/cron/jobs"
)

var jobName string

var cronStartCmd = &cobra.Command{
	Use:   "cron:start",
	Short: "Start the cron scheduler or run a single job by name",
	Run: func(cmd *cobra.Command, args []string) {
		if db, err := config.NewDB(); err == nil {
			jobs.DB = db
		} else {
			fmt.Printf("No database, DB-backed jobs disabled: %v\n", err)
		}
		if jobName != "" {
			name := strings.ToLower(jobName)
			if cronJob, ok := cron.CronJobs[name]; ok {
				fmt.Printf("Running cron job: %s\n", jobName)
				cronJob.Job(args...)
				return
			}
			if j, ok := cron.Jobs()[name]; ok {
				fmt.Printf("Running cron job: %s\n", jobName)
				j.Run(args...)
				return
			}
			fmt.Printf("Unknown job: %s\n", jobName)
			os.Exit(1)
		}
		fmt.Println("Starting cron scheduler...")
		c := cron.StartCron()
		defer c.Stop()
		fmt.Println("Cron scheduler started. Press Ctrl+C to exit.")
		select {} // Block forever
	},
}

func init() {
	cronStartCmd.Flags().StringVarP(&jobName, "job", "j", "", "Run a single cron job by name and exit")
	rootCmd.AddCommand(cronStartCmd)
}
