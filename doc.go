/*
A process-duplication playground for go.

Mitosis reproduces the classic fork() classroom exercises: a process
issues a duplication call, classifies itself as the original or the
duplicate from the call's result, and prints a role marker. Running the
demos shows the scheduler interleaving the tree's output differently on
every run, which is the whole point of the exercise.

The spawn package holds the duplication primitive and its trinary
classification. The exercise package holds the classroom variants as
Runners: one duplication, two sibling duplicates, and a
duplicate-of-a-duplicate chain. Each Runner can be invoked to create a
Process which can be monitored and signaled to stop; orchestration
helpers (squad, repeat) compose Runners into larger Runners.

The name comes from cell division: one process splits into two
near-identical ones, each carrying on independently.
*/
package mitosis
