package sqlite

import "github.com/en-arthur/initflow-be/pkg/types"

// Seed content for the three standard spec files created with every
// project. Each file starts at version 1 with no history; the first
// user or agent write supersedes it through the normal write path.
var specTemplates = map[string]string{
	types.SpecTypeDesign: `# Design Specification

## Architecture Overview
Your app architecture will be defined here...

## UI/UX Design
- Color scheme
- Typography
- Component library
- Navigation structure

## Technical Stack
- Framework and runtime
- State management
- API integration
`,

	types.SpecTypeRequirements: `# Requirements Specification

## Project Overview
Brief description of your application...

## User Stories

### Epic 1: Core Functionality
- As a user, I want to...

## Acceptance Criteria
Each user story should have clear acceptance criteria...

## Non-Functional Requirements
- Performance requirements
- Security requirements
`,

	types.SpecTypeTasks: `# Implementation Tasks

## Phase 1: Setup and Foundation
- [ ] Set up project structure
- [ ] Configure navigation

## Phase 2: Core Features
- [ ] Implement main functionality
- [ ] Add data persistence

## Phase 3: Polish and Testing
- [ ] Add error handling
- [ ] Implement testing
`,
}
