package server

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/quizline/hotseat/internal/hotseat"
)

const (
	demoAdminEmail    = "admin@hotseat.local"
	demoAdminPassword = "hotseat-admin"
)

// demoQuestions is a starter bank: two questions per difficulty tier in the
// import pipeline's line format (text|correct|wrong|wrong|wrong).
var demoQuestions = [hotseat.Levels][]string{
	{
		"How many days are there in a week?|Seven|Six|Eight|Five",
		"What color is a ripe banana?|Yellow|Blue|Purple|Black",
	},
	{
		"Which animal is known as man's best friend?|Dog|Cat|Horse|Goldfish",
		"How many sides does a triangle have?|Three|Four|Five|Six",
	},
	{
		"What is the capital of France?|Paris|Lyon|Marseille|Nice",
		"Which planet do we live on?|Earth|Mars|Venus|Jupiter",
	},
	{
		"How many minutes are in an hour?|Sixty|Fifty|Ninety|One hundred",
		"Which ocean lies between Europe and America?|Atlantic|Pacific|Indian|Arctic",
	},
	{
		"Who wrote Romeo and Juliet?|William Shakespeare|Charles Dickens|Oscar Wilde|Mark Twain",
		"What gas do plants absorb from the air?|Carbon dioxide|Oxygen|Nitrogen|Helium",
	},
	{
		"What is the largest planet in the solar system?|Jupiter|Saturn|Neptune|Earth",
		"In which country are the pyramids of Giza?|Egypt|Mexico|Sudan|Peru",
	},
	{
		"What is the chemical symbol for gold?|Au|Ag|Go|Gd",
		"Which instrument has 88 keys?|Piano|Organ|Accordion|Harpsichord",
	},
	{
		"Who painted the Mona Lisa?|Leonardo da Vinci|Michelangelo|Raphael|Donatello",
		"What is the longest river in South America?|Amazon|Parana|Orinoco|Magdalena",
	},
	{
		"In which year did the Second World War end?|1945|1944|1946|1943",
		"What is the smallest prime number?|Two|One|Three|Zero",
	},
	{
		"Which element has atomic number 1?|Hydrogen|Helium|Oxygen|Carbon",
		"Who developed the theory of general relativity?|Albert Einstein|Isaac Newton|Niels Bohr|Max Planck",
	},
	{
		"What is the capital of Australia?|Canberra|Sydney|Melbourne|Perth",
		"Which composer wrote his Ninth Symphony while deaf?|Ludwig van Beethoven|Wolfgang Amadeus Mozart|Franz Schubert|Johannes Brahms",
	},
	{
		"What is the rarest blood type in humans?|AB negative|O negative|B negative|A negative",
		"Which country spans the most time zones?|France|Russia|United States|China",
	},
	{
		"Who was the first woman to win a Nobel Prize?|Marie Curie|Rosalind Franklin|Lise Meitner|Dorothy Hodgkin",
		"What is the deepest known point of the world's oceans?|Challenger Deep|Tonga Trench|Puerto Rico Trench|Java Trench",
	},
	{
		"Which ancient wonder stood at Halicarnassus?|The Mausoleum|The Colossus|The Lighthouse|The Hanging Gardens",
		"What is the only metal that is liquid at room temperature?|Mercury|Gallium|Caesium|Bromine",
	},
	{
		"Which mathematician proved Fermat's Last Theorem?|Andrew Wiles|Grigori Perelman|Terence Tao|Paul Erdos",
		"What was the first artificial satellite to orbit Earth?|Sputnik 1|Explorer 1|Vanguard 1|Luna 1",
	},
}

// SeedDemo creates the demo admin account and a starter question bank.
// Idempotent: the admin is only created while the players table is empty,
// the bank only while the questions table is empty.
func SeedDemo(ctx context.Context, logger *slog.Logger, store *SQLiteStore) error {
	var players int
	if err := store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM players`).Scan(&players); err != nil {
		return fmt.Errorf("counting players: %w", err)
	}
	if players == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(demoAdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		_, err = store.db.ExecContext(ctx, `
			INSERT INTO players (id, name, email, password_hash, is_admin, created_at)
			VALUES (?, 'Admin', ?, ?, 1, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		`, newID(), demoAdminEmail, string(hash))
		if err != nil {
			return fmt.Errorf("creating demo admin: %w", err)
		}
		logger.Info("demo admin created", "email", demoAdminEmail)
	}

	var questions int
	if err := store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&questions); err != nil {
		return fmt.Errorf("counting questions: %w", err)
	}
	if questions == 0 {
		for level, lines := range demoQuestions {
			if _, err := store.ImportQuestions(ctx, level, lines); err != nil {
				return fmt.Errorf("seeding level %d: %w", level, err)
			}
		}
		logger.Info("demo question bank seeded", "levels", hotseat.Levels)
	}

	return nil
}
