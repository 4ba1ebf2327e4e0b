package inject

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/conneroisu/monoforge/internal/config"
	"github.com/conneroisu/monoforge/internal/logging"
)

// ormFramework describes where a backend framework's generated entrypoint
// lives and which anchors receive the injected source.
type ormFramework struct {
	entrypoint   string
	importAnchor *regexp.Regexp // imports are inserted after this line
	routesAnchor *regexp.Regexp // routes are inserted before this line
}

// ormFrameworks is the fixed injection table. Frameworks outside it are a
// deliberate no-op.
var ormFrameworks = map[string]ormFramework{
	"express": {
		entrypoint:   "src/index.ts",
		importAnchor: regexp.MustCompile(`(?m)^import cors from "cors";$`),
		routesAnchor: regexp.MustCompile(`(?m)^app\.listen\(`),
	},
	"hono": {
		entrypoint:   "src/index.ts",
		importAnchor: regexp.MustCompile(`(?m)^import \{ cors \} from "hono/cors";$`),
		routesAnchor: regexp.MustCompile(`(?m)^export default app;$`),
	},
}

// ORM inserts the db import and the users CRUD route handlers into a backend
// app's entrypoint. A missing entrypoint is a silent no-op; an anchor miss is
// logged and leaves the file unchanged.
func ORM(ctx context.Context, log logging.Logger, appDir, framework, projectName string, spec config.OrmSpec) error {
	if !spec.Enabled() {
		return nil
	}

	fw, ok := ormFrameworks[framework]
	if !ok {
		return nil
	}

	path := filepath.Join(appDir, fw.entrypoint)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read entrypoint %s: %w", path, err)
	}

	log = log.WithComponent("orm-inject")
	content := string(data)
	changed := false

	updated, ok := insertAfter(content, fw.importAnchor, ormImports(spec.Flavor, projectName))
	if !ok {
		log.Warn(ctx, nil, "import anchor not found, skipping ORM import injection",
			"file", path, "anchor", fw.importAnchor.String())
	}
	changed = changed || ok
	content = updated

	updated, ok = insertBefore(content, fw.routesAnchor, ormRoutes(framework, spec.Flavor))
	if !ok {
		log.Warn(ctx, nil, "routes anchor not found, skipping ORM route injection",
			"file", path, "anchor", fw.routesAnchor.String())
	}
	changed = changed || ok
	content = updated

	if !changed {
		return nil
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write entrypoint %s: %w", path, err)
	}

	return nil
}

// ormImports returns the import lines for one flavor. Only the project name
// is interpolated; everything else is literal.
func ormImports(flavor config.OrmFlavor, projectName string) string {
	switch flavor {
	case config.OrmDrizzle:
		return fmt.Sprintf(`import { db, users } from "@%s/db";
import { eq } from "drizzle-orm";`, projectName)
	case config.OrmPrisma:
		return fmt.Sprintf(`import { prisma } from "@%s/db";`, projectName)
	default:
		return ""
	}
}

// ormRoutes returns the literal CRUD-over-users route block for one
// framework x flavor cell.
func ormRoutes(framework string, flavor config.OrmFlavor) string {
	switch framework {
	case "express":
		if flavor == config.OrmDrizzle {
			return expressDrizzleRoutes
		}
		return expressPrismaRoutes
	case "hono":
		if flavor == config.OrmDrizzle {
			return honoDrizzleRoutes
		}
		return honoPrismaRoutes
	default:
		return ""
	}
}

const expressDrizzleRoutes = `app.get("/orm-test", (req, res) => {
  res.json({ message: "orm-test-endpoint", orm: "drizzle" });
});

app.get("/api/users", async (req, res) => {
  const allUsers = await db.select().from(users);
  res.json(allUsers);
});

app.post("/api/users", async (req, res) => {
  const [created] = await db.insert(users).values(req.body).returning();
  res.status(201).json(created);
});

app.put("/api/users/:id", async (req, res) => {
  const [updated] = await db
    .update(users)
    .set(req.body)
    .where(eq(users.id, Number(req.params.id)))
    .returning();
  res.json(updated);
});

app.delete("/api/users/:id", async (req, res) => {
  await db.delete(users).where(eq(users.id, Number(req.params.id)));
  res.status(204).end();
});
`

const expressPrismaRoutes = `app.get("/orm-test", (req, res) => {
  res.json({ message: "orm-test-endpoint", orm: "prisma" });
});

app.get("/api/users", async (req, res) => {
  const allUsers = await prisma.user.findMany();
  res.json(allUsers);
});

app.post("/api/users", async (req, res) => {
  const created = await prisma.user.create({ data: req.body });
  res.status(201).json(created);
});

app.put("/api/users/:id", async (req, res) => {
  const updated = await prisma.user.update({
    where: { id: Number(req.params.id) },
    data: req.body,
  });
  res.json(updated);
});

app.delete("/api/users/:id", async (req, res) => {
  await prisma.user.delete({ where: { id: Number(req.params.id) } });
  res.status(204).end();
});
`

const honoDrizzleRoutes = `app.get("/orm-test", (c) => c.json({ message: "orm-test-endpoint", orm: "drizzle" }));

app.get("/api/users", async (c) => {
  const allUsers = await db.select().from(users);
  return c.json(allUsers);
});

app.post("/api/users", async (c) => {
  const body = await c.req.json();
  const [created] = await db.insert(users).values(body).returning();
  return c.json(created, 201);
});

app.put("/api/users/:id", async (c) => {
  const body = await c.req.json();
  const [updated] = await db
    .update(users)
    .set(body)
    .where(eq(users.id, Number(c.req.param("id"))))
    .returning();
  return c.json(updated);
});

app.delete("/api/users/:id", async (c) => {
  await db.delete(users).where(eq(users.id, Number(c.req.param("id"))));
  return c.body(null, 204);
});
`

const honoPrismaRoutes = `app.get("/orm-test", (c) => c.json({ message: "orm-test-endpoint", orm: "prisma" }));

app.get("/api/users", async (c) => {
  const allUsers = await prisma.user.findMany();
  return c.json(allUsers);
});

app.post("/api/users", async (c) => {
  const body = await c.req.json();
  const created = await prisma.user.create({ data: body });
  return c.json(created, 201);
});

app.put("/api/users/:id", async (c) => {
  const body = await c.req.json();
  const updated = await prisma.user.update({
    where: { id: Number(c.req.param("id")) },
    data: body,
  });
  return c.json(updated);
});

app.delete("/api/users/:id", async (c) => {
  await prisma.user.delete({ where: { id: Number(c.req.param("id")) } });
  return c.body(null, 204);
});
`
