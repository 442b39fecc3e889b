package seeder

import "log"

func Defaults(logger *log.Logger) []Seeder {
	return []Seeder{
		JobsSeeder{},
		QuestionBankSeeder{},
		CandidatesSeeder{Logger: logger},
	}
}
