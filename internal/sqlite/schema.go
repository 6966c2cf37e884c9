package sqlite

// Schema DDL for all tables. Timestamps are RFC3339 TEXT; ids are UUID v7
// TEXT. The two UNIQUE indexes below the tables are the optimistic
// concurrency backstop for spec writes: one current row per
// (project, file_type) lineage, one history row per (lineage, version).
const (
	createUsers = `CREATE TABLE IF NOT EXISTS users (
    user_id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    tier TEXT NOT NULL,
    credits_remaining INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createProjects = `CREATE TABLE IF NOT EXISTS projects (
    project_id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    name TEXT NOT NULL,
    description TEXT,
    status TEXT NOT NULL,
    tier TEXT NOT NULL,
    sandbox_ref TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (owner_id) REFERENCES users(user_id)
);`

	createSpecFiles = `CREATE TABLE IF NOT EXISTS spec_files (
    spec_file_id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    file_type TEXT NOT NULL,
    content TEXT NOT NULL,
    version INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    created_by TEXT NOT NULL,
    FOREIGN KEY (project_id) REFERENCES projects(project_id),
    FOREIGN KEY (created_by) REFERENCES users(user_id)
);`

	createSpecVersions = `CREATE TABLE IF NOT EXISTS spec_versions (
    version_id TEXT PRIMARY KEY,
    spec_file_id TEXT NOT NULL,
    version INTEGER NOT NULL,
    content TEXT NOT NULL,
    changes_summary TEXT,
    created_at TEXT NOT NULL,
    created_by TEXT NOT NULL,
    FOREIGN KEY (spec_file_id) REFERENCES spec_files(spec_file_id),
    FOREIGN KEY (created_by) REFERENCES users(user_id)
);`

	createTasks = `CREATE TABLE IF NOT EXISTS tasks (
    task_id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    agent_type TEXT NOT NULL,
    description TEXT NOT NULL,
    status TEXT NOT NULL,
    input_context TEXT,
    output TEXT,
    created_at TEXT NOT NULL,
    completed_at TEXT,
    FOREIGN KEY (project_id) REFERENCES projects(project_id)
);`

	createChatMessages = `CREATE TABLE IF NOT EXISTS chat_messages (
    message_id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    role TEXT NOT NULL,
    content TEXT NOT NULL,
    attachments TEXT,
    created_at TEXT NOT NULL,
    FOREIGN KEY (project_id) REFERENCES projects(project_id)
);`

	createMemoryItems = `CREATE TABLE IF NOT EXISTS memory_items (
    item_id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    item_type TEXT NOT NULL,
    content TEXT NOT NULL,
    metadata TEXT,
    created_at TEXT NOT NULL,
    FOREIGN KEY (project_id) REFERENCES projects(project_id)
);`
)

// Index DDL for uniqueness guarantees and common queries.
const (
	idxSpecFilesLineage   = `CREATE UNIQUE INDEX IF NOT EXISTS idx_spec_files_lineage ON spec_files(project_id, file_type);`
	idxSpecVersionsUnique = `CREATE UNIQUE INDEX IF NOT EXISTS idx_spec_versions_unique ON spec_versions(spec_file_id, version);`
	idxProjectsOwner      = `CREATE INDEX IF NOT EXISTS idx_projects_owner ON projects(owner_id);`
	idxTasksProject       = `CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id);`
	idxChatProject        = `CREATE INDEX IF NOT EXISTS idx_chat_project ON chat_messages(project_id);`
	idxMemoryProject      = `CREATE INDEX IF NOT EXISTS idx_memory_project ON memory_items(project_id);`
	idxMemoryType         = `CREATE INDEX IF NOT EXISTS idx_memory_type ON memory_items(project_id, item_type);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createUsers,
	createProjects,
	createSpecFiles,
	createSpecVersions,
	createTasks,
	createChatMessages,
	createMemoryItems,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxSpecFilesLineage,
	idxSpecVersionsUnique,
	idxProjectsOwner,
	idxTasksProject,
	idxChatProject,
	idxMemoryProject,
	idxMemoryType,
}
