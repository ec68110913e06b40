package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/csrf"
	"github.com/tiendita/storefront/app/cmd"
	"github.com/tiendita/storefront/app/configs"
	"github.com/tiendita/storefront/app/routes"
	"github.com/tiendita/storefront/app/utils/sessions"
)

func main() {

	env := configs.LoadEnv()
	if len(os.Args) > 1 {
		cmd.RunCli()
		return
	}

	keys, err := configs.LoadSessionKeysFromEnv()
	if err != nil {
		log.Fatal("Session keys missing, run `generate-keys` first:", err)
	}

	db, err := configs.OpenConnection()
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	log.Println("✅ Database connected.")

	sessionStore := sessions.NewCookieSessionStore(keys.AuthKey, keys.EncKey)
	router := routes.NewRouter(db, sessionStore)

	csrfProtect := csrf.Protect(keys.AuthKey, csrf.Secure(env.APP_ENV == "production"))

	server := http.Server{
		Addr:    env.Port,
		Handler: csrfProtect(router),
	}

	log.Printf("🚀 Server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Println("failed to connecting to the server")
	}

}
