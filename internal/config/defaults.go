package config

import "github.com/spf13/viper"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.graceful_shutdown_timeout", "10s")
	v.SetDefault("server.trusted_proxies", []string{})

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.postgres.host", "")
	v.SetDefault("database.postgres.port", 5432)
	v.SetDefault("database.postgres.db", "")
	v.SetDefault("database.postgres.user", "")
	v.SetDefault("database.postgres.password", "")
	v.SetDefault("database.postgres.sslmode", "require")
	v.SetDefault("database.postgres.max_idle_conns", 2)
	v.SetDefault("database.postgres.max_open_conns", 10)
	v.SetDefault("database.postgres.conn_max_lifetime", "30m")
	v.SetDefault("database.postgres.auto_migrate", false)
	v.SetDefault("database.sqlite.path", "")
	v.SetDefault("database.sqlite.auto_migrate", true)
	v.SetDefault("database.redis.host", "localhost")
	v.SetDefault("database.redis.port", 6379)
	v.SetDefault("database.redis.password", "")
	v.SetDefault("database.redis.pool_size", 10)

	v.SetDefault("state.backend", "memory")
	v.SetDefault("guard.max_misses", 20)
	v.SetDefault("guard.window", "15m")

	v.SetDefault("admin.link_param", "admin")
	v.SetDefault("admin.link_token", "")
	v.SetDefault("admin.link_token_hash", "")

	v.SetDefault("mail.provider", "mailgun")
	v.SetDefault("mail.from_email", "")
	v.SetDefault("mail.from_name", "")
	v.SetDefault("mail.timeout", "20s")
	v.SetDefault("mail.mailgun.api_key", "")
	v.SetDefault("mail.mailgun.domain", "")
	v.SetDefault("mail.mailgun.api_base", "")
	v.SetDefault("mail.smtp.host", "")
	v.SetDefault("mail.smtp.username", "")
	v.SetDefault("mail.smtp.password", "")
	v.SetDefault("mail.smtp.port", 587)
	v.SetDefault("mail.smtp.use_starttls", true)

	v.SetDefault("trip.name", "Costa Rica Trip")
	v.SetDefault("trip.title", "Costa Rica Trip")
	v.SetDefault("trip.tagline", "June 11-17, 2026 · Sun, sand, and a long weekend together.")
	v.SetDefault("trip.dest_city", "Liberia, Costa Rica")
	v.SetDefault("trip.dest_iata", "LIR")
	v.SetDefault("trip.start_date", "2026-06-11")
	v.SetDefault("trip.end_date", "2026-06-17")
	v.SetDefault("trip.start_time", "19:00")
	v.SetDefault("trip.allow_rsvp_redo", false)
	v.SetDefault("trip.declined_message", "Thanks for letting us know. We will miss you!")
	v.SetDefault("trip.default_origin", "NYC")
	v.SetDefault("trip.origin_aliases", map[string]string{
		"nashville":     "BNA",
		"nashville tn":  "BNA",
		"washington dc": "WAS",
		"dc":            "WAS",
		"houston":       "HOU",
		"houston tx":    "HOU",
		"orlando":       "MCO",
		"orlando fl":    "MCO",
		"dallas":        "DFW",
		"dallas tx":     "DFW",
	})
	v.SetDefault("trip.price_estimates", []map[string]interface{}{
		{"label": "Nashville (BNA)", "price": 520},
		{"label": "Washington DC (WAS)", "price": 540},
		{"label": "Houston (HOU)", "price": 480},
		{"label": "Orlando (MCO)", "price": 460},
		{"label": "Dallas (DFW)", "price": 500},
	})
	v.SetDefault("trip.passport_standard_weeks", 13)
	v.SetDefault("trip.passport_expedited_weeks", 7)
	v.SetDefault("trip.passport_info_url", "https://travel.state.gov/content/travel/en/passports/how-apply.html")
	v.SetDefault("trip.weather.avg_high_f", 84)
	v.SetDefault("trip.weather.avg_low_f", 70)
	v.SetDefault("trip.weather.note", "June is warm and humid with afternoon showers.")
	v.SetDefault("trip.gallery_dir", "assets/gallery")
	v.SetDefault("trip.auto_refresh_seconds", 60)
	v.SetDefault("trip.survey.liquor", []string{"Vodka", "Tequila", "Whiskey", "Rum", "Gin", "Champagne", "Wine", "Non-drinker"})
	v.SetDefault("trip.survey.events", []string{"Club", "Brunch", "Day party", "Chill night", "Excursion", "Beach", "Pool"})
	v.SetDefault("trip.survey.arrival_windows", []string{"June 10", "June 11", "June 12", "June 13", "Not sure"})
	v.SetDefault("trip.survey.plus_one", []string{"No", "Yes", "Maybe"})
	v.SetDefault("trip.survey.budgets", []string{"Under $50", "$50-$100", "$100-$200", "$200+"})

	v.SetDefault("cors.allowed_methods", []string{"GET", "POST"})
	v.SetDefault("cors.allowed_headers", []string{"Content-Type", "X-Admin-Token"})
	v.SetDefault("cors.max_age", "12h")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}
