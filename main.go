package main

import (
	"fmt"
	"log"

	"github.com/quillhost/quill/db"
	"github.com/quillhost/quill/federation"
	"github.com/quillhost/quill/util"
	"github.com/quillhost/quill/web"
	"go.uber.org/zap"
)

func main() {

	conf, err := util.ReadConf()
	if err != nil {
		log.Fatalln(err)
	}

	fmt.Println("Configuration: ")
	fmt.Println(util.PrettyPrint(conf))

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalln(err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	dbPath := util.ResolveFilePath(conf.Conf.DbPath)
	store, err := db.Open(dbPath)
	if err != nil {
		sugar.Fatalw("could not open database", "path", dbPath, "err", err)
	}

	sugar.Info("running database migrations")
	if err := store.Migrate(); err != nil {
		sugar.Fatalw("migration failed", "err", err)
	}

	fed := federation.NewRouter(store, conf, sugar)
	server := web.NewServer(store, conf, fed, sugar)

	if err := server.Run(); err != nil {
		sugar.Fatalw("http server stopped", "err", err)
	}
}
