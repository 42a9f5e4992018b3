// reposnap builds dated corpus snapshots from a set of git repositories.
//
// Given a list of repositories and an inclusive date range, reposnap brings a
// local working copy of every repository to the last commit at or before the
// end date, runs an external extraction tool over each checked out tree to
// produce per-day text files, and finally concatenates all produced files
// into a bounded number of merged files.
//
// Working copies are kept under a single work root and are not authoritative:
// a copy whose configured remote no longer matches the expected URL is
// removed and cloned again, and every run hard-resets the copy to the
// selected historical commit. Repositories are processed strictly one at a
// time, in the order given, and the first failure aborts the whole run.
package reposnap
