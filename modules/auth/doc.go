// Package auth exposes the HTTP authentication surface: a JSON login/logout
// API, a session probe, and protected example resources, all mounted on a
// chi router driven by a session.Manager.
//
// The package also provides StaticDirectory, a fixed in-memory user directory
// with bcrypt-hashed passwords, used as the session manager's credential
// backend when no external identity provider is wired in.
//
// Example:
//
//	dir, _ := auth.NewStaticDirectory([]auth.Account{
//	    {ID: "1", Username: "juan", Password: "123456"},
//	})
//	mgr := session.New(
//	    session.WithCodec(codec),
//	    session.WithStore(store),
//	    session.WithDirectory(dir),
//	)
//	svc := auth.NewService(mgr, auth.WithServiceLogger(log))
//
//	r := chi.NewRouter()
//	r.Mount("/api", svc.Router())
package auth
