package model

// Question represents a quiz question row.
//
// The Questions table is created at startup for compatibility with the
// original database file, but no route currently reads or writes it. Kept so
// the schema matches deployed databases; do not infer quiz behavior from it.
type Question struct {
	ID            int64  `json:"id"            db:"question_id"`
	Question      string `json:"question"      db:"question"`
	CorrectAnswer string `json:"correctAnswer" db:"correct_answer"`
}
