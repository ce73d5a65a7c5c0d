package report

import (
	"fmt"
	"io"

	"github.com/ak7sky/cidrsum/internal/core/model"
)

// Write renders one line per bucket followed by the totals.
func Write(report *model.Report, sink Sink) error {
	for _, bucket := range report.Buckets {
		if err := sink.WriteLine(fmt.Sprintf("%s - Hosts: %d", bucket.Net, bucket.Hosts)); err != nil {
			return err
		}
	}

	footer := []string{
		"",
		fmt.Sprintf("Total Subnets: %d", report.TotalSubnets),
		fmt.Sprintf("Total Hosts: %d", report.TotalHosts),
	}
	for _, line := range footer {
		if err := sink.WriteLine(line); err != nil {
			return err
		}
	}
	return nil
}

// Confirm prints the summary shown after the report went to a file.
func Confirm(w io.Writer, report *model.Report, path string) error {
	_, err := fmt.Fprintf(w,
		"All IPs grouped into /%d CIDR notation with host counts written to %s\n"+
			"Total Subnets: %d, Total Hosts: %d\n",
		report.MaskLen, path, report.TotalSubnets, report.TotalHosts)
	return err
}
