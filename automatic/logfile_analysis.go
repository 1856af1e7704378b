package automatic

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// AnalyzeLogFile reads a game log written by StartCompVComp and returns
// the same summary the run printed. Depths are not in the log and are
// reported as zero.
func AnalyzeLogFile(filepath string) (string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return "", err
	}
	defer file.Close()
	r := csv.NewReader(file)
	r.FieldsPerRecord = logFields

	// Record looks like:
	// gameID,winner,first,plies,height,width
	summary := &Summary{}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if record[0] == "gameID" {
			// this is the header line
			continue
		}
		fields := make([]int, len(record))
		for i, f := range record {
			fields[i], err = strconv.Atoi(f)
			if err != nil {
				return "", fmt.Errorf("line %v: %w", record, err)
			}
		}
		res := Result{GameID: fields[0], Winner: fields[1], FirstSeat: fields[2],
			Plies: fields[3], Height: fields[4], Width: fields[5]}
		if res.Winner < 0 || res.Winner > 1 || res.FirstSeat < 0 || res.FirstSeat > 1 {
			return "", fmt.Errorf("bad seat in record %v", record)
		}
		summary.Add(res)
	}
	return summary.String(), nil
}
