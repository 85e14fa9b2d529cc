package main

// BookKey exposes bookKey for tests.
var BookKey = bookKey
