package seeder

import (
	"context"
	"fmt"

	"talentflow/internal/database"
	"talentflow/internal/domain"
)

type QuestionBankSeeder struct{}

func (QuestionBankSeeder) Name() string { return "question_bank" }

type seedQuestion struct {
	Type     domain.QuestionType
	Category domain.QuestionCategory
	RoleTags []string
	Question string
	Options  []string
	Answer   []string
}

func (QuestionBankSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "question_bank", "id", "qtype", "category", "role_tags", "difficulty", "question", "options", "correct_answer"); err != nil {
		return err
	}

	var count int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM question_bank`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, q := range bankQuestions() {
		tags := q.RoleTags
		if tags == nil {
			tags = []string{}
		}
		answer := q.Answer
		if answer == nil {
			answer = []string{}
		}
		_, err := tx.Exec(
			ctx,
			`INSERT INTO question_bank (qtype, category, role_tags, difficulty, question, options, correct_answer)
			 VALUES ($1, $2, $3, 'medium', $4, $5, $6)`,
			q.Type, q.Category, tags, q.Question, q.Options, answer,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func bankQuestions() []seedQuestion {
	var out []seedQuestion

	single := func(category domain.QuestionCategory, tags []string, question string, options []string, answer string) {
		out = append(out, seedQuestion{
			Type:     domain.QuestionSingleChoice,
			Category: category,
			RoleTags: tags,
			Question: question,
			Options:  options,
			Answer:   []string{answer},
		})
	}

	// Aptitude pool. Sampled down to 10 per assessment.
	aptitude := []struct {
		Q       string
		Options []string
		A       string
	}{
		{"If a train travels 120 km in 2 hours, what is its average speed?", []string{"40 km/h", "50 km/h", "60 km/h", "80 km/h"}, "60 km/h"},
		{"What is the next number in the sequence 2, 6, 12, 20, 30?", []string{"40", "42", "44", "46"}, "42"},
		{"A shirt costs $40 after a 20% discount. What was the original price?", []string{"$44", "$48", "$50", "$52"}, "$50"},
		{"Which number is the odd one out: 3, 5, 11, 14, 17?", []string{"3", "11", "14", "17"}, "14"},
		{"If 5 machines make 5 widgets in 5 minutes, how long do 100 machines take to make 100 widgets?", []string{"5 minutes", "20 minutes", "100 minutes", "1 minute"}, "5 minutes"},
		{"What is 15% of 200?", []string{"15", "20", "30", "35"}, "30"},
		{"A clock shows 3:15. What is the angle between the hands?", []string{"0 degrees", "7.5 degrees", "15 degrees", "30 degrees"}, "7.5 degrees"},
		{"Complete the analogy: book is to reading as fork is to?", []string{"drawing", "writing", "eating", "stirring"}, "eating"},
		{"How many months have 28 days?", []string{"1", "2", "6", "12"}, "12"},
		{"If all roses are flowers and some flowers fade quickly, which must be true?", []string{"All roses fade quickly", "Some roses fade quickly", "No roses fade quickly", "None of the above"}, "None of the above"},
		{"What is the missing number: 1, 1, 2, 3, 5, 8, ?", []string{"11", "12", "13", "14"}, "13"},
		{"A is twice as old as B. In 10 years A will be 1.5 times as old as B. How old is B now?", []string{"10", "15", "20", "25"}, "20"},
		{"Which word does not belong: apple, banana, carrot, mango?", []string{"apple", "banana", "carrot", "mango"}, "carrot"},
		{"What is 7 cubed?", []string{"243", "343", "443", "543"}, "343"},
		{"If yesterday was Thursday, what day is three days after tomorrow?", []string{"Monday", "Tuesday", "Wednesday", "Sunday"}, "Tuesday"},
	}
	for _, q := range aptitude {
		single(domain.CategoryAptitude, nil, q.Q, q.Options, q.A)
	}

	// Management pool. Sampled down to 7 per assessment.
	management := []struct {
		Q       string
		Options []string
		A       string
	}{
		{"A teammate consistently misses standup. What is the best first step?", []string{"Escalate to their manager", "Talk to them privately", "Ignore it", "Raise it in the next retro"}, "Talk to them privately"},
		{"Two stakeholders give you conflicting priorities. What do you do?", []string{"Pick the louder one", "Do both in parallel", "Facilitate an alignment conversation", "Defer all work until resolved"}, "Facilitate an alignment conversation"},
		{"A project is slipping a week before the deadline. What is the most effective response?", []string{"Add more engineers", "Cut scope with stakeholders", "Mandate overtime", "Move the deadline silently"}, "Cut scope with stakeholders"},
		{"How should negative feedback be delivered?", []string{"In public, so others learn", "Privately and specifically", "Via email only", "At the annual review"}, "Privately and specifically"},
		{"What best describes a RACI matrix?", []string{"A testing strategy", "A responsibility assignment chart", "A budgeting tool", "A risk register"}, "A responsibility assignment chart"},
		{"A new hire is struggling in their first month. You should:", []string{"Extend their probation", "Pair them with a mentor and set clear expectations", "Reassign them", "Wait and see"}, "Pair them with a mentor and set clear expectations"},
		{"Which metric best signals team delivery health over time?", []string{"Lines of code", "Story points per person", "Cycle time trend", "Hours logged"}, "Cycle time trend"},
		{"When should a one-on-one meeting be cancelled?", []string{"When there is no agenda", "When the project is busy", "Almost never", "When the report seems fine"}, "Almost never"},
		{"The best way to handle a disagreement on technical direction is to:", []string{"Let the most senior person decide", "Time-box a spike and compare results", "Vote", "Avoid the topic"}, "Time-box a spike and compare results"},
		{"What is the primary goal of a retrospective?", []string{"Assign blame for failures", "Continuous process improvement", "Status reporting", "Celebrating wins only"}, "Continuous process improvement"},
		{"An engineer wants to rewrite a working system. Your first question should be:", []string{"How long will it take?", "What problem does the rewrite solve?", "Which language?", "Who will maintain it?"}, "What problem does the rewrite solve?"},
		{"Delegation works best when you delegate:", []string{"Tasks only", "Outcomes with context", "Everything", "Nothing critical"}, "Outcomes with context"},
		{"A burnout warning sign in a report is:", []string{"Asking for more work", "Withdrawal and missed commitments", "Taking planned vacation", "Asking questions"}, "Withdrawal and missed commitments"},
		{"The main purpose of a project kickoff is to:", []string{"Assign blame early", "Align on goals, scope and roles", "Pick the tech stack", "Set up repositories"}, "Align on goals, scope and roles"},
	}
	for _, q := range management {
		single(domain.CategoryManagement, nil, q.Q, q.Options, q.A)
	}

	// Role-tagged technical questions. Tags match seed job titles exactly.
	backend := []struct {
		Q       string
		Options []string
		A       string
	}{
		{"Which HTTP status code indicates a resource was created?", []string{"200", "201", "204", "301"}, "201"},
		{"What does a database index primarily improve?", []string{"Write throughput", "Read lookup speed", "Storage efficiency", "Backup speed"}, "Read lookup speed"},
		{"Which isolation level prevents dirty reads but allows non-repeatable reads?", []string{"Read uncommitted", "Read committed", "Repeatable read", "Serializable"}, "Read committed"},
		{"In Go, what does a nil map lookup return?", []string{"A panic", "The zero value", "An error", "nil always"}, "The zero value"},
		{"What is idempotency in an API?", []string{"Responses are cached", "Repeating a request has the same effect as one request", "Requests are encrypted", "Requests are queued"}, "Repeating a request has the same effect as one request"},
		{"Which tool is commonly used for connection pooling with PostgreSQL?", []string{"pgbouncer", "redis", "etcd", "nginx"}, "pgbouncer"},
	}
	for _, q := range backend {
		single(domain.CategoryTechnical, []string{"Backend Engineer", "Platform Engineer"}, q.Q, q.Options, q.A)
	}

	frontend := []struct {
		Q       string
		Options []string
		A       string
	}{
		{"What does the virtual DOM optimize?", []string{"Network requests", "DOM update batching", "CSS parsing", "Image loading"}, "DOM update batching"},
		{"Which hook runs after every render by default?", []string{"useState", "useEffect", "useMemo", "useRef"}, "useEffect"},
		{"What does CSS specificity decide?", []string{"Load order", "Which rule wins", "File size", "Animation speed"}, "Which rule wins"},
		{"Which storage survives a browser restart?", []string{"sessionStorage", "localStorage", "memory", "none"}, "localStorage"},
		{"What is tree shaking?", []string{"DOM pruning", "Dead code elimination at bundle time", "Garbage collection", "Cache eviction"}, "Dead code elimination at bundle time"},
		{"In TypeScript, what does the unknown type require before use?", []string{"Nothing", "A type assertion or narrowing", "A cast to any", "A generic parameter"}, "A type assertion or narrowing"},
	}
	for _, q := range frontend {
		single(domain.CategoryTechnical, []string{"Frontend Developer", "Full Stack Developer"}, q.Q, q.Options, q.A)
	}

	devops := []struct {
		Q       string
		Options []string
		A       string
	}{
		{"What does a Kubernetes liveness probe do?", []string{"Scales pods", "Restarts unhealthy containers", "Routes traffic", "Mounts volumes"}, "Restarts unhealthy containers"},
		{"Which component stores Kubernetes cluster state?", []string{"kubelet", "etcd", "kube-proxy", "containerd"}, "etcd"},
		{"What is the main benefit of infrastructure as code?", []string{"Cheaper servers", "Reproducible environments", "Faster CPUs", "Smaller images"}, "Reproducible environments"},
		{"A canary deployment routes:", []string{"All traffic to the new version", "A small share of traffic to the new version", "Traffic to a staging cluster", "No traffic anywhere"}, "A small share of traffic to the new version"},
		{"What does an SLO define?", []string{"A contractual penalty", "A target level of reliability", "An alert threshold only", "A deployment window"}, "A target level of reliability"},
		{"Which signal asks a process to terminate gracefully?", []string{"SIGKILL", "SIGTERM", "SIGSTOP", "SIGSEGV"}, "SIGTERM"},
	}
	for _, q := range devops {
		single(domain.CategoryTechnical, []string{"DevOps Engineer", "Site Reliability Engineer", "Cloud Engineer"}, q.Q, q.Options, q.A)
	}

	data := []struct {
		Q       string
		Options []string
		A       string
	}{
		{"What does ETL stand for?", []string{"Extract, Transform, Load", "Evaluate, Test, Launch", "Extract, Transfer, Link", "Encode, Transform, Load"}, "Extract, Transform, Load"},
		{"Which join returns all rows from both tables, matching where possible?", []string{"Inner join", "Left join", "Full outer join", "Cross join"}, "Full outer join"},
		{"What is data partitioning mainly used for?", []string{"Encryption", "Query pruning and manageability", "Compression", "Replication"}, "Query pruning and manageability"},
		{"Which metric is most robust to outliers?", []string{"Mean", "Median", "Range", "Sum"}, "Median"},
		{"What does overfitting mean?", []string{"The model is too simple", "The model memorizes training noise", "The dataset is too large", "Training is too slow"}, "The model memorizes training noise"},
		{"Which storage format is columnar?", []string{"CSV", "JSON", "Parquet", "XML"}, "Parquet"},
	}
	for _, q := range data {
		single(domain.CategoryTechnical, []string{"Data Engineer", "Data Scientist", "Machine Learning Engineer"}, q.Q, q.Options, q.A)
	}

	// Generic pool used to top up any role that runs short.
	general := []struct {
		Q       string
		Options []string
		A       string
	}{
		{"What does HTTP stand for?", []string{"HyperText Transfer Protocol", "High Throughput Transfer Protocol", "HyperText Transmission Process", "Host Transfer Text Protocol"}, "HyperText Transfer Protocol"},
		{"Which data structure uses FIFO ordering?", []string{"Stack", "Queue", "Tree", "Heap"}, "Queue"},
		{"What is the time complexity of binary search?", []string{"O(n)", "O(log n)", "O(n log n)", "O(1)"}, "O(log n)"},
		{"What does Git branching enable?", []string{"Faster clones", "Parallel lines of development", "Smaller repositories", "Automatic merges"}, "Parallel lines of development"},
		{"Which protocol secures HTTP traffic?", []string{"FTP", "TLS", "SMTP", "SSH"}, "TLS"},
		{"What is a race condition?", []string{"A fast algorithm", "Outcome depending on unsynchronized timing", "A network timeout", "A CPU cache miss"}, "Outcome depending on unsynchronized timing"},
		{"What does a unit test verify?", []string{"The whole system end to end", "A small isolated piece of behavior", "Production traffic", "Deployment scripts"}, "A small isolated piece of behavior"},
		{"Which of these is NOT a relational database?", []string{"PostgreSQL", "MySQL", "MongoDB", "SQLite"}, "MongoDB"},
		{"What does API rate limiting protect against?", []string{"SQL injection", "Resource exhaustion", "Phishing", "Data loss"}, "Resource exhaustion"},
		{"What is the purpose of a code review?", []string{"Slowing releases", "Catching defects and sharing knowledge", "Formatting code", "Assigning blame"}, "Catching defects and sharing knowledge"},
		{"In REST, which verb is conventionally used for partial updates?", []string{"POST", "PUT", "PATCH", "DELETE"}, "PATCH"},
		{"What is a deadlock?", []string{"A slow query", "Two processes waiting on each other forever", "A full disk", "An expired token"}, "Two processes waiting on each other forever"},
		{"What does caching trade for speed?", []string{"Security", "Freshness", "Bandwidth", "Durability"}, "Freshness"},
		{"Which encoding is used by JSON strings?", []string{"ASCII only", "UTF-8", "Latin-1", "UTF-32 only"}, "UTF-8"},
		{"What is the main purpose of logging in production?", []string{"Debugging and auditing behavior", "Slowing attackers", "Saving disk space", "Improving latency"}, "Debugging and auditing behavior"},
		{"A pure function:", []string{"Reads global state", "Always returns the same output for the same input", "Writes to disk", "Depends on time"}, "Always returns the same output for the same input"},
		{"What does CI in CI/CD stand for?", []string{"Code inspection", "Continuous integration", "Container image", "Critical incident"}, "Continuous integration"},
		{"Which header carries the media type of an HTTP response body?", []string{"Accept", "Content-Type", "Authorization", "ETag"}, "Content-Type"},
		{"What is horizontal scaling?", []string{"Bigger machines", "More machines", "Faster disks", "More RAM"}, "More machines"},
		{"What does a message queue decouple?", []string{"Producers from consumers", "Clients from DNS", "Disks from CPUs", "Tests from code"}, "Producers from consumers"},
		{"Which is a symmetric encryption algorithm?", []string{"RSA", "AES", "ECDSA", "SHA-256"}, "AES"},
		{"What is technical debt?", []string{"Unpaid licenses", "Future cost of expedient shortcuts", "Server bills", "Staff turnover"}, "Future cost of expedient shortcuts"},
		{"What does DNS resolve?", []string{"Ports to services", "Names to IP addresses", "Users to sessions", "Files to blocks"}, "Names to IP addresses"},
		{"Which practice catches regressions automatically?", []string{"Pair programming", "Automated test suites", "Standups", "Documentation"}, "Automated test suites"},
		{"What is the result of integer division 7 / 2 in most typed languages?", []string{"3.5", "3", "4", "Error"}, "3"},
	}
	for _, q := range general {
		single(domain.CategoryTechnical, []string{"general"}, q.Q, q.Options, q.A)
	}

	return out
}
