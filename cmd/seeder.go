package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with a bootstrap admin and sample camps, events and associations for development.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"audit_log", "camp_event_associations", "events", "camps", "users"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "changeme-admin"
		hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		seedUser(db, "admin@camp.test", "Bootstrap Admin", string(hash), "global admin")
		seedUser(db, "site@camp.test", "Site Admin", string(hash), "site admin")
		seedUser(db, "leader@camp.test", "Camp Leader", string(hash), "camp manager")

		camps := []struct {
			Name string
			Desc string
		}{
			{"Fire Dancers", "Performance art collective"},
			{"Dust Kitchen", "Community kitchen camp"},
		}
		for _, c := range camps {
			var exists int
			row := db.Raw("SELECT 1 FROM camps WHERE name = ?", c.Name).Row()
			if err := row.Scan(&exists); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO camps (name, description, created_at) VALUES (?, ?, now())", c.Name, c.Desc).Error; err != nil {
				log.Fatalf("failed to insert camp %s: %v", c.Name, err)
			}
			fmt.Println("Seeded camp:", c.Name)
		}

		var creatorID int64
		if err := db.Raw("SELECT id FROM users WHERE email = ?", "leader@camp.test").Row().Scan(&creatorID); err != nil {
			log.Fatalf("failed to look up seed creator: %v", err)
		}

		var eventExists int
		row := db.Raw("SELECT 1 FROM events WHERE title = ?", "Burn Night").Row()
		if err := row.Scan(&eventExists); err != nil {
			if err := db.Exec(
				"INSERT INTO events (title, location, start_date, end_date, creator_id, status, version, created_at, updated_at) VALUES (?, ?, now() + interval '30 days', now() + interval '31 days', ?, 'pending', 1, now(), now())",
				"Burn Night", "The Playa", creatorID).Error; err != nil {
				log.Fatalf("failed to insert event: %v", err)
			}
			fmt.Println("Seeded event: Burn Night")
		}

		var assocExists int
		row = db.Raw("SELECT 1 FROM camp_event_associations LIMIT 1").Row()
		if err := row.Scan(&assocExists); err != nil {
			if err := db.Exec(
				"INSERT INTO camp_event_associations (camp_id, event_id, status, requested_at, version, created_at, updated_at) SELECT c.id, e.id, 'pending', now(), 1, now(), now() FROM camps c, events e WHERE c.name = ? AND e.title = ?",
				"Fire Dancers", "Burn Night").Error; err != nil {
				log.Fatalf("failed to insert association: %v", err)
			}
			fmt.Println("Seeded association: Fire Dancers -> Burn Night")
		}

		fmt.Println("Seeding complete. Admin login:", "admin@camp.test", "/", password)
	},
}

func seedUser(db *gorm.DB, email, name, hash, userRole string) {
	var exists int
	row := db.Raw("SELECT 1 FROM users WHERE email = ?", email).Row()
	if err := row.Scan(&exists); err == nil {
		fmt.Println("user already exists:", email)
		return
	}

	if err := db.Exec(
		"INSERT INTO users (email, name, password_hash, role, is_active, version, created_at, updated_at) VALUES (?, ?, ?, ?, true, 1, now(), now())",
		email, name, hash, userRole).Error; err != nil {
		log.Fatalf("failed to insert user %s: %v", email, err)
	}
	fmt.Println("Seeded user:", email)
}
