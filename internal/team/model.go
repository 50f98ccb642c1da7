package team

import "time"

// Years lists the accepted academic year values, in display order.
var Years = []string{"1st Year", "2nd Year", "3rd Year", "4th Year"}

// ValidYear reports whether y is one of the accepted academic years.
func ValidYear(y string) bool {
	for _, v := range Years {
		if v == y {
			return true
		}
	}
	return false
}

// Team represents a row in the teams table.
type Team struct {
	ID            int       `db:"id"`
	TeamName      string    `db:"team_name"`
	Student1Name  string    `db:"student1_name"`
	Student1RegNo string    `db:"student1_regno"`
	Student2Name  string    `db:"student2_name"`
	Student2RegNo string    `db:"student2_regno"`
	Year          string    `db:"year"`
	CreatedAt     time.Time `db:"created_at"`
}
