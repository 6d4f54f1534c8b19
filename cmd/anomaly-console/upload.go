// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a spreadsheet of articles for analysis",
	Long: `Upload sends an Excel workbook to the backend as multipart/form-data.
The backend parses every row, runs anomaly analysis, and returns the ingested
articles. Large workbooks can take minutes; the wait is bounded by
upload_timeout (default 300s).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		result, err := c.UploadExcelFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return render(cmd, result)
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}
