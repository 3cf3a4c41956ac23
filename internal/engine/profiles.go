package engine

// Profiles returns the concrete Profile for every wire-protocol engine in
// the Glossary. Command-line shapes follow each engine's real CLI
// contract; placeholders are resolved by ServerAdapter.placeholders via
// ResolveArgs.
func Profiles() []Profile {
	return []Profile{
		postgresProfile(),
		mysqlProfile(),
		mariadbProfile(),
		mongodbProfile(),
		ferretdbProfile(),
		redisProfile(),
		valkeyProfile(),
		clickhouseProfile(),
		qdrantProfile(),
		meilisearchProfile(),
		couchdbProfile(),
		cockroachdbProfile(),
		surrealdbProfile(),
		questdbProfile(),
		typedbProfile(),
		tigerbeetleProfile(),
		weaviateProfile(),
	}
}

func postgresProfile() Profile {
	return Profile{
		EngineName:  "postgres",
		Aliases:     []string{"postgresql", "pg"},
		Family:      "pg-wire",
		DefaultPort: 5432,
		ConnScheme:  "postgresql",

		ServerBinary: "postgres",
		InitBinary:   "initdb",
		InitArgs:     []string{"-D", "{{dataDir}}", "-U", "postgres", "-A", "trust"},

		StartArgs: []string{"-D", "{{dataDir}}", "-p", "{{port}}", "-k", "/tmp"},

		Readiness:     ReadinessExec,
		ReadyBinary:   "pg_isready",
		ReadyArgs:     []string{"-h", "{{host}}", "-p", "{{port}}"},
		ReadyTimeoutS: 30,

		ScriptBinary:    "psql",
		ScriptArgs:      []string{"-h", "{{host}}", "-p", "{{port}}", "-U", "postgres", "-d", "{{database}}", "-f", "{{file}}"},
		ScriptStdinArgs: []string{"-h", "{{host}}", "-p", "{{port}}", "-U", "postgres", "-d", "{{database}}"},

		QueryBinary: "psql",
		QueryArgs:   []string{"-h", "{{host}}", "-p", "{{port}}", "-U", "postgres", "-d", "{{database}}", "-A", "-F", "\t", "-c", "{{query}}"},

		DumpBinary: "pg_dump",
		DumpArgs:   []string{"-h", "{{host}}", "-p", "{{port}}", "-U", "postgres", "-Fc", "{{database}}"},

		RestoreBinary: "pg_restore",
		RestoreArgs:   []string{"-h", "{{host}}", "-p", "{{port}}", "-U", "postgres", "-d", "{{database}}", "--clean", "--if-exists", "{{inPath}}"},

		CreateUserSupported: true,
		CreateUserBinary:    "psql",
		CreateUserArgs:      []string{"-h", "{{host}}", "-p", "{{port}}", "-U", "postgres", "-c", "CREATE USER {{username}} WITH PASSWORD '{{password}}'"},

		CreateDatabaseSupported: true,
		CreateDatabaseBinary:    "createdb",
		CreateDatabaseArgs:      []string{"-h", "{{host}}", "-p", "{{port}}", "-U", "postgres", "{{name}}"},

		DefaultFormat: "custom",
		FormatExt:     map[string]string{"custom": ".dump", "sql": ".sql"},
		InstallHint:   "install PostgreSQL: https://www.postgresql.org/download/",
	}
}

func mysqlProfile() Profile {
	return Profile{
		EngineName:  "mysql",
		Family:      "mysql-wire",
		DefaultPort: 3306,
		ConnScheme:  "mysql",

		ServerBinary: "mysqld",
		InitBinary:   "mysqld",
		InitArgs:     []string{"--initialize-insecure", "--datadir={{dataDir}}"},

		StartArgs: []string{"--datadir={{dataDir}}", "--port={{port}}", "--pid-file={{pidFile}}", "--socket={{dataDir}}/mysql.sock"},

		Readiness:     ReadinessExec,
		ReadyBinary:   "mysqladmin",
		ReadyArgs:     []string{"-h", "{{host}}", "-P", "{{port}}", "-u", "root", "ping"},
		ReadyTimeoutS: 40,

		ScriptBinary:    "mysql",
		ScriptArgs:      []string{"-h", "{{host}}", "-P", "{{port}}", "-u", "root", "{{database}}"},
		ScriptStdinArgs: []string{"-h", "{{host}}", "-P", "{{port}}", "-u", "root", "{{database}}"},

		QueryBinary: "mysql",
		QueryArgs:   []string{"-h", "{{host}}", "-P", "{{port}}", "-u", "root", "-B", "{{database}}", "-e", "{{query}}"},

		DumpBinary: "mysqldump",
		DumpArgs:   []string{"-h", "{{host}}", "-P", "{{port}}", "-u", "root", "{{database}}"},

		RestoreBinary: "mysql",
		RestoreArgs:   []string{"-h", "{{host}}", "-P", "{{port}}", "-u", "root", "{{database}}"},

		CreateUserSupported: true,
		CreateUserBinary:    "mysql",
		CreateUserArgs:      []string{"-h", "{{host}}", "-P", "{{port}}", "-u", "root", "-e", "CREATE USER '{{username}}'@'%' IDENTIFIED BY '{{password}}'; GRANT ALL ON {{database}}.* TO '{{username}}'@'%'"},

		CreateDatabaseSupported: true,
		CreateDatabaseBinary:    "mysql",
		CreateDatabaseArgs:      []string{"-h", "{{host}}", "-P", "{{port}}", "-u", "root", "-e", "CREATE DATABASE {{name}}"},

		DefaultFormat: "sql",
		FormatExt:     map[string]string{"sql": ".sql"},
		InstallHint:   "install MySQL: https://dev.mysql.com/downloads/",
	}
}

func mariadbProfile() Profile {
	p := mysqlProfile()
	p.EngineName = "mariadb"
	p.ServerBinary = "mariadbd"
	p.InitBinary = "mariadb-install-db"
	p.InitArgs = []string{"--datadir={{dataDir}}", "--auth-root-authentication-method=normal"}
	p.ScriptBinary = "mariadb"
	p.QueryBinary = "mariadb"
	p.RestoreBinary = "mariadb"
	p.CreateUserBinary = "mariadb"
	p.CreateDatabaseBinary = "mariadb"
	p.DumpBinary = "mariadb-dump"
	p.ReadyBinary = "mariadb-admin"
	p.InstallHint = "install MariaDB: https://mariadb.org/download/"
	return p
}

func mongodbProfile() Profile {
	return Profile{
		EngineName:  "mongodb",
		Aliases:     []string{"mongo"},
		Family:      "mongo-wire",
		DefaultPort: 27017,
		ConnScheme:  "mongodb",

		ServerBinary: "mongod",
		InitArgs:     nil,

		StartArgs: []string{"--dbpath", "{{dataDir}}", "--port", "{{port}}", "--pidfilepath", "{{pidFile}}", "--logpath", "{{logFile}}", "--bind_ip", "127.0.0.1"},

		Readiness:     ReadinessTCP,
		ReadyTimeoutS: 30,

		ScriptBinary:    "mongosh",
		ScriptArgs:      []string{"--host", "{{host}}", "--port", "{{port}}", "{{database}}", "{{file}}"},
		ScriptStdinArgs: []string{"--host", "{{host}}", "--port", "{{port}}", "{{database}}"},

		QueryBinary: "mongosh",
		QueryArgs:   []string{"--host", "{{host}}", "--port", "{{port}}", "{{database}}", "--quiet", "--eval", "{{query}}"},

		DumpBinary: "mongodump",
		DumpArgs:   []string{"--host", "{{host}}", "--port", "{{port}}", "--db", "{{database}}", "--archive"},

		RestoreBinary: "mongorestore",
		RestoreArgs:   []string{"--host", "{{host}}", "--port", "{{port}}", "--db", "{{database}}", "--archive={{inPath}}", "--drop"},

		CreateUserSupported: true,
		CreateUserBinary:    "mongosh",
		CreateUserArgs: []string{"--host", "{{host}}", "--port", "{{port}}", "{{database}}", "--eval",
			"db.createUser({user:'{{username}}',pwd:'{{password}}',roles:[{role:'readWrite',db:'{{database}}'}]})"},

		DefaultFormat: "archive",
		FormatExt:     map[string]string{"archive": ".archive"},
		InstallHint:   "install MongoDB: https://www.mongodb.com/try/download/community",
	}
}

func ferretdbProfile() Profile {
	p := mongodbProfile()
	p.EngineName = "ferretdb"
	p.ServerBinary = "ferretdb"
	p.StartArgs = []string{"--listen-addr", "127.0.0.1:{{port}}", "--state-dir", "{{dataDir}}", "--handler", "sqlite"}
	p.InstallHint = "install FerretDB: https://docs.ferretdb.io/installation/"
	return p
}

func redisProfile() Profile {
	return Profile{
		EngineName:  "redis",
		Family:      "redis-wire",
		DefaultPort: 6379,
		ConnScheme:  "redis",

		ServerBinary: "redis-server",

		StartArgs: []string{"--port", "{{port}}", "--dir", "{{dataDir}}", "--daemonize", "no", "--pidfile", "{{pidFile}}", "--logfile", "{{logFile}}"},

		Readiness:     ReadinessExec,
		ReadyBinary:   "redis-cli",
		ReadyArgs:     []string{"-h", "{{host}}", "-p", "{{port}}", "ping"},
		ReadyTimeoutS: 15,

		ScriptBinary:    "redis-cli",
		ScriptArgs:      []string{"-h", "{{host}}", "-p", "{{port}}", "--eval", "{{file}}"},
		ScriptStdinArgs: []string{"-h", "{{host}}", "-p", "{{port}}"},

		QueryBinary: "redis-cli",
		QueryArgs:   []string{"-h", "{{host}}", "-p", "{{port}}", "{{query}}"},

		DumpBinary: "redis-cli",
		DumpArgs:   []string{"-h", "{{host}}", "-p", "{{port}}", "--rdb", "{{outPath}}"},

		RestoreBinary: "redis-cli",
		RestoreArgs:   []string{"-h", "{{host}}", "-p", "{{port}}", "--pipe"},

		DefaultFormat: "rdb",
		FormatExt:     map[string]string{"rdb": ".rdb"},
		InstallHint:   "install Redis: https://redis.io/download/",
	}
}

func valkeyProfile() Profile {
	p := redisProfile()
	p.EngineName = "valkey"
	p.ServerBinary = "valkey-server"
	p.ReadyBinary = "valkey-cli"
	p.ScriptBinary = "valkey-cli"
	p.QueryBinary = "valkey-cli"
	p.DumpBinary = "valkey-cli"
	p.RestoreBinary = "valkey-cli"
	p.InstallHint = "install Valkey: https://valkey.io/download/"
	return p
}

func clickhouseProfile() Profile {
	return Profile{
		EngineName:  "clickhouse",
		Family:      "http",
		DefaultPort: 8123,
		ConnScheme:  "clickhouse",

		ServerBinary: "clickhouse-server",
		StartArgs:    []string{"--config-file", "{{dataDir}}/config.xml", "--pid-file", "{{pidFile}}"},

		Readiness:     ReadinessTCP,
		ReadyTimeoutS: 30,

		ScriptBinary:    "clickhouse-client",
		ScriptArgs:      []string{"--host", "{{host}}", "--port", "9000", "--database", "{{database}}", "--queries-file", "{{file}}"},
		ScriptStdinArgs: []string{"--host", "{{host}}", "--port", "9000", "--database", "{{database}}"},

		QueryBinary: "clickhouse-client",
		QueryArgs:   []string{"--host", "{{host}}", "--port", "9000", "--database", "{{database}}", "--query", "{{query}}"},

		DumpBinary: "clickhouse-client",
		DumpArgs:   []string{"--host", "{{host}}", "--port", "9000", "--database", "{{database}}", "--query", "SELECT * FROM system.tables FORMAT Native"},

		RestoreBinary: "clickhouse-client",
		RestoreArgs:   []string{"--host", "{{host}}", "--port", "9000", "--database", "{{database}}", "--queries-file", "{{inPath}}"},

		CreateDatabaseSupported: true,
		CreateDatabaseBinary:    "clickhouse-client",
		CreateDatabaseArgs:      []string{"--host", "{{host}}", "--port", "9000", "--query", "CREATE DATABASE {{name}}"},

		DefaultFormat: "native",
		FormatExt:     map[string]string{"native": ".native", "sql": ".sql"},
		InstallHint:   "install ClickHouse: https://clickhouse.com/docs/en/install",
	}
}

func qdrantProfile() Profile {
	return Profile{
		EngineName:  "qdrant",
		Family:      "http",
		DefaultPort: 6333,
		ConnScheme:  "http",

		ServerBinary: "qdrant",
		StartArgs:    []string{"--config-path", "{{dataDir}}/config.yaml"},

		Readiness:     ReadinessTCP,
		ReadyTimeoutS: 20,

		ScriptBinary:    "curl",
		ScriptArgs:      []string{"-s", "-X", "POST", "http://{{host}}:{{port}}/collections/{{database}}/points", "-H", "Content-Type: application/json", "-d", "@{{file}}"},
		ScriptStdinArgs: []string{"-s", "-X", "POST", "http://{{host}}:{{port}}/collections/{{database}}/points", "-H", "Content-Type: application/json", "-d", "@-"},

		QueryBinary: "curl",
		QueryArgs:   []string{"-s", "http://{{host}}:{{port}}/collections/{{database}}/points/scroll"},

		DumpBinary: "curl",
		DumpArgs:   []string{"-s", "-X", "POST", "http://{{host}}:{{port}}/collections/{{database}}/snapshots"},

		RestoreBinary: "curl",
		RestoreArgs:   []string{"-s", "-X", "PUT", "http://{{host}}:{{port}}/collections/{{database}}/snapshots/upload", "-F", "snapshot=@{{inPath}}"},

		DefaultFormat: "snapshot",
		FormatExt:     map[string]string{"snapshot": ".snapshot"},
		InstallHint:   "install Qdrant: https://qdrant.tech/documentation/guides/installation/",
	}
}

func meilisearchProfile() Profile {
	return Profile{
		EngineName:  "meilisearch",
		Family:      "http",
		DefaultPort: 7700,
		ConnScheme:  "http",

		ServerBinary: "meilisearch",
		StartArgs:    []string{"--db-path", "{{dataDir}}", "--http-addr", "127.0.0.1:{{port}}"},

		Readiness:     ReadinessTCP,
		ReadyTimeoutS: 20,

		ScriptBinary:    "curl",
		ScriptArgs:      []string{"-s", "-X", "POST", "http://{{host}}:{{port}}/indexes/{{database}}/documents", "-H", "Content-Type: application/json", "--data-binary", "@{{file}}"},
		ScriptStdinArgs: []string{"-s", "-X", "POST", "http://{{host}}:{{port}}/indexes/{{database}}/documents", "-H", "Content-Type: application/json", "--data-binary", "@-"},

		QueryBinary: "curl",
		QueryArgs:   []string{"-s", "http://{{host}}:{{port}}/indexes/{{database}}/search", "-X", "POST", "-H", "Content-Type: application/json", "-d", "{{query}}"},

		DumpBinary: "curl",
		DumpArgs:   []string{"-s", "-X", "POST", "http://{{host}}:{{port}}/dumps"},

		RestoreBinary: "cp",
		RestoreArgs:   []string{"{{inPath}}", "{{dataDir}}/restore.dump"},

		DefaultFormat: "dump",
		FormatExt:     map[string]string{"dump": ".dump"},
		InstallHint:   "install Meilisearch: https://www.meilisearch.com/docs/learn/getting_started/installation",
	}
}

func couchdbProfile() Profile {
	return Profile{
		EngineName:  "couchdb",
		Family:      "http",
		DefaultPort: 5984,
		ConnScheme:  "http",

		ServerBinary: "couchdb",
		StartArgs:    []string{"-couch_ini", "{{dataDir}}/local.ini"},

		Readiness:     ReadinessTCP,
		ReadyTimeoutS: 25,

		ScriptBinary:    "curl",
		ScriptArgs:      []string{"-s", "-X", "POST", "http://{{host}}:{{port}}/{{database}}/_bulk_docs", "-H", "Content-Type: application/json", "-d", "@{{file}}"},
		ScriptStdinArgs: []string{"-s", "-X", "POST", "http://{{host}}:{{port}}/{{database}}/_bulk_docs", "-H", "Content-Type: application/json", "-d", "@-"},

		QueryBinary: "curl",
		QueryArgs:   []string{"-s", "http://{{host}}:{{port}}/{{database}}/_find", "-X", "POST", "-H", "Content-Type: application/json", "-d", "{{query}}"},

		DumpBinary: "curl",
		DumpArgs:   []string{"-s", "http://{{host}}:{{port}}/{{database}}/_all_docs?include_docs=true"},

		RestoreBinary: "curl",
		RestoreArgs:   []string{"-s", "-X", "POST", "http://{{host}}:{{port}}/{{database}}/_bulk_docs", "-H", "Content-Type: application/json", "-d", "@{{inPath}}"},

		CreateDatabaseSupported: true,
		CreateDatabaseBinary:    "curl",
		CreateDatabaseArgs:      []string{"-s", "-X", "PUT", "http://{{host}}:{{port}}/{{name}}"},

		DefaultFormat: "json",
		FormatExt:     map[string]string{"json": ".json"},
		InstallHint:   "install CouchDB: https://docs.couchdb.org/en/stable/install/index.html",
	}
}

func cockroachdbProfile() Profile {
	return Profile{
		EngineName:  "cockroachdb",
		Aliases:     []string{"cockroach"},
		Family:      "pg-wire",
		DefaultPort: 26257,
		ConnScheme:  "postgresql",

		ServerBinary: "cockroach",
		StartArgs:    []string{"start-single-node", "--store={{dataDir}}", "--listen-addr=127.0.0.1:{{port}}", "--insecure", "--pid-file={{pidFile}}"},

		Readiness:     ReadinessExec,
		ReadyBinary:   "cockroach",
		ReadyArgs:     []string{"sql", "--insecure", "--host=127.0.0.1:{{port}}", "-e", "SELECT 1"},
		ReadyTimeoutS: 30,

		ScriptBinary:    "cockroach",
		ScriptArgs:      []string{"sql", "--insecure", "--host=127.0.0.1:{{port}}", "-d", "{{database}}", "-f", "{{file}}"},
		ScriptStdinArgs: []string{"sql", "--insecure", "--host=127.0.0.1:{{port}}", "-d", "{{database}}"},

		QueryBinary: "cockroach",
		QueryArgs:   []string{"sql", "--insecure", "--host=127.0.0.1:{{port}}", "-d", "{{database}}", "--format=tsv", "-e", "{{query}}"},

		DumpBinary: "cockroach",
		DumpArgs:   []string{"dump", "{{database}}", "--insecure", "--host=127.0.0.1:{{port}}"},

		RestoreBinary: "cockroach",
		RestoreArgs:   []string{"sql", "--insecure", "--host=127.0.0.1:{{port}}", "-d", "{{database}}", "-f", "{{inPath}}"},

		CreateUserSupported: true,
		CreateUserBinary:    "cockroach",
		CreateUserArgs:      []string{"sql", "--insecure", "--host=127.0.0.1:{{port}}", "-e", "CREATE USER {{username}} WITH PASSWORD '{{password}}'"},

		CreateDatabaseSupported: true,
		CreateDatabaseBinary:    "cockroach",
		CreateDatabaseArgs:      []string{"sql", "--insecure", "--host=127.0.0.1:{{port}}", "-e", "CREATE DATABASE {{name}}"},

		DefaultFormat: "sql",
		FormatExt:     map[string]string{"sql": ".sql"},
		InstallHint:   "install CockroachDB: https://www.cockroachlabs.com/docs/stable/install-cockroachdb",
	}
}

func surrealdbProfile() Profile {
	return Profile{
		EngineName:  "surrealdb",
		Aliases:     []string{"surreal"},
		Family:      "ws",
		DefaultPort: 8000,
		ConnScheme:  "ws",

		ServerBinary: "surreal",
		StartArgs:    []string{"start", "--bind", "127.0.0.1:{{port}}", "file:{{dataDir}}/surreal.db"},

		Readiness:     ReadinessTCP,
		ReadyTimeoutS: 20,

		ScriptBinary:    "surreal",
		ScriptArgs:      []string{"import", "--conn", "ws://{{host}}:{{port}}", "--ns", "spindb", "--db", "{{database}}", "{{file}}"},
		ScriptStdinArgs: []string{"sql", "--conn", "ws://{{host}}:{{port}}", "--ns", "spindb", "--db", "{{database}}"},

		QueryBinary: "surreal",
		QueryArgs:   []string{"sql", "--conn", "ws://{{host}}:{{port}}", "--ns", "spindb", "--db", "{{database}}", "--pretty", "--hide-welcome"},

		DumpBinary: "surreal",
		DumpArgs:   []string{"export", "--conn", "ws://{{host}}:{{port}}", "--ns", "spindb", "--db", "{{database}}", "{{outPath}}"},

		RestoreBinary: "surreal",
		RestoreArgs:   []string{"import", "--conn", "ws://{{host}}:{{port}}", "--ns", "spindb", "--db", "{{database}}", "{{inPath}}"},

		DefaultFormat: "surql",
		FormatExt:     map[string]string{"surql": ".surql"},
		InstallHint:   "install SurrealDB: https://surrealdb.com/install",
	}
}

func questdbProfile() Profile {
	return Profile{
		EngineName:  "questdb",
		Family:      "http",
		DefaultPort: 9000,
		ConnScheme:  "http",

		ServerBinary: "questdb.sh",
		StartArgs:    []string{"start", "-d", "{{dataDir}}"},

		Readiness:     ReadinessTCP,
		ReadyTimeoutS: 30,

		ScriptBinary:    "curl",
		ScriptArgs:      []string{"-s", "-G", "http://{{host}}:{{port}}/exec", "--data-urlencode", "query@{{file}}"},
		ScriptStdinArgs: []string{"-s", "-G", "http://{{host}}:{{port}}/exec"},

		QueryBinary: "curl",
		QueryArgs:   []string{"-s", "-G", "http://{{host}}:{{port}}/exec", "--data-urlencode", "query={{query}}"},

		DumpBinary: "curl",
		DumpArgs:   []string{"-s", "-G", "http://{{host}}:{{port}}/exp", "--data-urlencode", "query=SELECT * FROM {{database}}"},

		RestoreBinary: "curl",
		RestoreArgs:   []string{"-s", "-F", "data=@{{inPath}}", "http://{{host}}:{{port}}/imp?name={{database}}"},

		DefaultFormat: "csv",
		FormatExt:     map[string]string{"csv": ".csv"},
		InstallHint:   "install QuestDB: https://questdb.io/download/",
	}
}

func typedbProfile() Profile {
	return Profile{
		EngineName:  "typedb",
		Family:      "http",
		DefaultPort: 1729,
		ConnScheme:  "typedb",

		ServerBinary: "typedb",
		StartArgs:    []string{"server", "--storage.data", "{{dataDir}}", "--server.address", "127.0.0.1:{{port}}"},

		Readiness:     ReadinessTCP,
		ReadyTimeoutS: 30,

		ScriptBinary:    "typedb",
		ScriptArgs:      []string{"console", "--address=127.0.0.1:{{port}}", "--database={{database}}", "--file={{file}}"},
		ScriptStdinArgs: []string{"console", "--address=127.0.0.1:{{port}}", "--database={{database}}"},

		QueryBinary: "typedb",
		QueryArgs:   []string{"console", "--address=127.0.0.1:{{port}}", "--database={{database}}", "--command={{query}}"},

		DumpBinary: "typedb",
		DumpArgs:   []string{"console", "--address=127.0.0.1:{{port}}", "--command=database export {{database}} {{outPath}}"},

		RestoreBinary: "typedb",
		RestoreArgs:   []string{"console", "--address=127.0.0.1:{{port}}", "--command=database import {{database}} {{inPath}}"},

		CreateDatabaseSupported: true,
		CreateDatabaseBinary:    "typedb",
		CreateDatabaseArgs:      []string{"console", "--address=127.0.0.1:{{port}}", "--command=database create {{name}}"},

		DefaultFormat: "typedb",
		FormatExt:     map[string]string{"typedb": ".typedb"},
		InstallHint:   "install TypeDB: https://typedb.com/docs/home/install",
	}
}

func tigerbeetleProfile() Profile {
	return Profile{
		EngineName:  "tigerbeetle",
		Family:      "tb-wire",
		DefaultPort: 3000,
		ConnScheme:  "tb",

		ServerBinary: "tigerbeetle",
		InitBinary:   "tigerbeetle",
		InitArgs:     []string{"format", "--cluster=0", "--replica=0", "--replica-count=1", "{{dataDir}}/0_0.tigerbeetle"},

		StartArgs: []string{"start", "--addresses=127.0.0.1:{{port}}", "{{dataDir}}/0_0.tigerbeetle"},

		Readiness:     ReadinessTCP,
		ReadyTimeoutS: 20,

		ScriptBinary:    "tigerbeetle",
		ScriptArgs:      []string{"repl", "--cluster=0", "--addresses=127.0.0.1:{{port}}", "--command-file={{file}}"},
		ScriptStdinArgs: []string{"repl", "--cluster=0", "--addresses=127.0.0.1:{{port}}"},

		QueryBinary: "tigerbeetle",
		QueryArgs:   []string{"repl", "--cluster=0", "--addresses=127.0.0.1:{{port}}", "--command={{query}}"},

		DefaultFormat: "binary",
		FormatExt:     map[string]string{"binary": ".tigerbeetle"},
		InstallHint:   "install TigerBeetle: https://docs.tigerbeetle.com/quick-start/",
	}
}

func weaviateProfile() Profile {
	return Profile{
		EngineName:  "weaviate",
		Family:      "http",
		DefaultPort: 8080,
		ConnScheme:  "http",

		ServerBinary: "weaviate",
		StartArgs:    []string{"--host", "127.0.0.1", "--port", "{{port}}", "--scheme", "http"},

		Readiness:     ReadinessTCP,
		ReadyTimeoutS: 30,

		ScriptBinary:    "curl",
		ScriptArgs:      []string{"-s", "-X", "POST", "http://{{host}}:{{port}}/v1/batch/objects", "-H", "Content-Type: application/json", "-d", "@{{file}}"},
		ScriptStdinArgs: []string{"-s", "-X", "POST", "http://{{host}}:{{port}}/v1/batch/objects", "-H", "Content-Type: application/json", "-d", "@-"},

		QueryBinary: "curl",
		QueryArgs:   []string{"-s", "http://{{host}}:{{port}}/v1/graphql", "-X", "POST", "-H", "Content-Type: application/json", "-d", "{{query}}"},

		DumpBinary: "curl",
		DumpArgs:   []string{"-s", "http://{{host}}:{{port}}/v1/backups/filesystem", "-X", "POST", "-d", "{\"id\":\"spindb\"}"},

		RestoreBinary: "curl",
		RestoreArgs:   []string{"-s", "http://{{host}}:{{port}}/v1/backups/filesystem/spindb/restore", "-X", "POST"},

		DefaultFormat: "backup",
		FormatExt:     map[string]string{"backup": ".backup"},
		InstallHint:   "install Weaviate: https://weaviate.io/developers/weaviate/installation",
	}
}
